package weavetest

import (
	"io/ioutil"
	"os"
	"testing"

	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/store/iavl"
)

// CommitKVStore opens an iavl store in a fresh temporary directory. Use it
// instead of store.MemStore when a test must commit and reload versions.
// Call cleanup to remove the directory.
func CommitKVStore(t testing.TB) (db weave.CommitKVStore, cleanup func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "stream-commit-")
	if err != nil {
		t.Fatalf("temporary directory: %s", err)
	}
	return iavl.NewCommitStore(dir, "db"), func() { os.RemoveAll(dir) }
}
