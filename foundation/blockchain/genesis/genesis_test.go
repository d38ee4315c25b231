package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/validate"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

func Test_Load(t *testing.T) {
	type table struct {
		name    string
		content string
		valid   bool
		exp     genesis.Genesis
	}

	tt := []table{
		{
			name:    "defaults",
			content: `{}`,
			valid:   true,
			exp:     genesis.Default(),
		},
		{
			name:    "override",
			content: `{"payload":"Start","difficulty":2,"strategy":"keccak256"}`,
			valid:   true,
			exp:     genesis.Genesis{Payload: "Start", Difficulty: 2, Strategy: "keccak256"},
		},
		{
			name:    "unknown-strategy",
			content: `{"strategy":"md5"}`,
			valid:   false,
		},
		{
			name:    "empty-payload",
			content: `{"payload":""}`,
			valid:   false,
		},
	}

	t.Log("Given the need to load genesis settings from a file.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen loading the %s file.", testID, tst.name)
			{
				f := func(t *testing.T) {
					path := filepath.Join(t.TempDir(), "genesis.json")
					if err := os.WriteFile(path, []byte(tst.content), 0600); err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to write the file: %v", failed, testID, err)
					}

					gen, err := genesis.Load(path)
					if !tst.valid {
						if err == nil {
							t.Fatalf("\t%s\tTest %d:\tShould not be able to load the file.", failed, testID)
						}
						if !validate.IsFieldErrors(err) {
							t.Fatalf("\t%s\tTest %d:\tShould get back field errors: %v", failed, testID, err)
						}
						t.Logf("\t%s\tTest %d:\tShould not be able to load the file.", success, testID)
						return
					}

					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to load the file: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to load the file.", success, testID)

					if gen != tst.exp {
						t.Logf("\t%s\tTest %d:\tgot: %+v", failed, testID, gen)
						t.Logf("\t%s\tTest %d:\texp: %+v", failed, testID, tst.exp)
						t.Fatalf("\t%s\tTest %d:\tShould get back the right settings.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get back the right settings.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_LoadMissing(t *testing.T) {
	if _, err := genesis.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("\t%s\tShould not be able to load a missing file.", failed)
	}
	t.Logf("\t%s\tShould not be able to load a missing file.", success)
}
