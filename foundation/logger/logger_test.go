package logger_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cadocurrency/ledger/foundation/logger"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestNew(t *testing.T) {
	t.Log("Given the need to write structured logs for a service.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen logging to a file.", testID)
		{
			path := filepath.Join(t.TempDir(), "node.log")

			log, err := logger.New("NODE", path)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould construct the logger: %v", failed, testID, err)
			}

			log.Infow("startup", "status", "ledger ready")
			log.Sync()

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould read the log file: %v", failed, testID, err)
			}

			for _, want := range []string{`"service":"NODE"`, `"status":"ledger ready"`, `"msg":"startup"`} {
				if !strings.Contains(string(data), want) {
					t.Fatalf("\t%s\tTest %d:\tShould contain %s in %s", failed, testID, want, data)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould write the service and fields as JSON.", success, testID)
		}
	}
}
