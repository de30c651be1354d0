// Package fetch downloads catalog slot images into mirrored asset folders.
//
// A slot file is fetched when it is missing. When the catalog recorded a new
// URL for a slot whose file already exists, the old file is archived under a
// timestamped name first and the slot's changed flag is cleared once the
// replacement is on disk.
package fetch
