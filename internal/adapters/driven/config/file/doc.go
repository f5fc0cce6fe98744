// Package file keeps loaderhub's user defaults in a TOML file, by default
// ~/.loaderhub/config.toml. The file holds only settings; loads themselves
// leave nothing on disk.
package file
