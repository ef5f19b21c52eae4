package fs

import "github.com/spf13/afero"

// ProvideFilesystem provides the OS-backed filesystem used by the fs adapters
func ProvideFilesystem() afero.Fs {
	return afero.NewOsFs()
}
