package specconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-quicktest/qt"

	"specgo.dev/go/spec"
)

func TestLoadAndApply(t *testing.T) {
	spec.ResetRegistry()
	dir := t.TempDir()
	path := filepath.Join(dir, "specgo.yaml")
	err := os.WriteFile(path, []byte("aliases:\n  myorg/pos: specgo.core/positive_integer\n"), 0o644)
	qt.Assert(t, qt.IsNil(err))

	f, err := Load(path)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(f.Apply()))

	qt.Assert(t, qt.IsTrue(spec.Valid("myorg/pos", 1)))
	qt.Assert(t, qt.Not(qt.IsTrue(spec.Valid("myorg/pos", -1))))
}

func TestApplyRejectsUnknownTarget(t *testing.T) {
	spec.ResetRegistry()
	f := &File{Aliases: map[string]string{"myorg/x": "myorg/does-not-exist"}}
	qt.Assert(t, qt.Not(qt.IsNil(f.Apply())))
}
