package content

import (
	"github.com/arthur-debert/genout/pkg/synchronizer"
)

// WriteToDisk synchronizes the named target (DEFAULT when empty) into
// outputRoot on the OS filesystem with default settings. Drivers that sync
// several targets should share one synchronizer.Synchronizer instead, so
// clean targets are kept out of each other's roots.
func (m *Manager) WriteToDisk(outputRoot, target string) (*synchronizer.Report, error) {
	return synchronizer.New().Sync(m, target, outputRoot)
}
