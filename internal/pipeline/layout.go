package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	ChannelsDirName   = "channel-planes"
	HistogramsDirName = "histograms"
	BinarizedDirName  = "binarized"
	ManifestFileName  = "manifest.yaml"
)

// Layout maps roles onto the output tree.
type Layout struct {
	Root string
}

func (l Layout) RoleDir(role string) string {
	return filepath.Join(l.Root, role)
}

func (l Layout) ChannelsDir(role string) string {
	return filepath.Join(l.RoleDir(role), ChannelsDirName)
}

func (l Layout) HistogramsDir(role string) string {
	return filepath.Join(l.RoleDir(role), HistogramsDirName)
}

func (l Layout) BinarizedDir(role string) string {
	return filepath.Join(l.RoleDir(role), BinarizedDirName)
}

func (l Layout) GrayscalePath(role string) string {
	return filepath.Join(l.RoleDir(role), role+"_escala_cinza.png")
}

func (l Layout) ManifestPath() string {
	return filepath.Join(l.Root, ManifestFileName)
}

// Prepare creates every role's directories. Existing directories are kept.
func (l Layout) Prepare(roles []Role) error {
	for _, r := range roles {
		for _, dir := range []string{l.ChannelsDir(r.Name), l.HistogramsDir(r.Name), l.BinarizedDir(r.Name)} {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("%w: create %s: %v", ErrWriteFailed, dir, err)
			}
		}
	}
	return nil
}
