// Package encode writes a compute response's JSON payload to a URI using
// TileDB's VFS layer, the way the teacher's root json.go writes decoded
// GSF metadata to disk or an object store through the same abstraction
// (cmd/geonoise writes receivers/panel/grid/probe responses this way so
// the same binary works against local paths and s3:// URIs without a
// second code path).
package encode

import (
	"errors"
	"fmt"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
)

// WriteJSON writes data to fileURI through a TileDB VFS stream, loading
// configURI if given or a generic config otherwise (the same
// "load from URI if given, else build sane defaults" pattern used
// throughout the teacher's TileDB call sites).
func WriteJSON(fileURI, configURI string, data []byte) (int, error) {
	var (
		config *tiledb.Config
		err    error
	)

	if configURI == "" {
		config, err = tiledb.NewConfig()
	} else {
		config, err = tiledb.LoadConfig(configURI)
	}
	if err != nil {
		return 0, fmt.Errorf("loading tiledb config: %w", err)
	}
	defer config.Free()

	ctx, err := tiledb.NewContext(config)
	if err != nil {
		return 0, fmt.Errorf("creating tiledb context: %w", err)
	}
	defer ctx.Free()

	vfs, err := tiledb.NewVFS(ctx, config)
	if err != nil {
		return 0, fmt.Errorf("creating tiledb vfs: %w", err)
	}
	defer vfs.Free()

	stream, err := vfs.Open(fileURI, tiledb.TILEDB_VFS_WRITE)
	if err != nil {
		return 0, fmt.Errorf("opening %s for write: %w", fileURI, err)
	}
	defer stream.Close()

	n, err := stream.Write(data)
	if err != nil {
		return 0, errors.Join(fmt.Errorf("writing %s", fileURI), err)
	}
	return n, nil
}

// ReadJSON reads the full contents of fileURI through the same TileDB
// VFS abstraction, so a scene document or engine config can be loaded
// from a local path or an object store indifferently.
func ReadJSON(fileURI, configURI string) ([]byte, error) {
	var (
		config *tiledb.Config
		err    error
	)

	if configURI == "" {
		config, err = tiledb.NewConfig()
	} else {
		config, err = tiledb.LoadConfig(configURI)
	}
	if err != nil {
		return nil, fmt.Errorf("loading tiledb config: %w", err)
	}
	defer config.Free()

	ctx, err := tiledb.NewContext(config)
	if err != nil {
		return nil, fmt.Errorf("creating tiledb context: %w", err)
	}
	defer ctx.Free()

	vfs, err := tiledb.NewVFS(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating tiledb vfs: %w", err)
	}
	defer vfs.Free()

	stream, err := vfs.Open(fileURI, tiledb.TILEDB_VFS_READ)
	if err != nil {
		return nil, fmt.Errorf("opening %s for read: %w", fileURI, err)
	}
	defer stream.Close()

	size, err := vfs.FileSize(fileURI)
	if err != nil {
		return nil, fmt.Errorf("statting %s: %w", fileURI, err)
	}

	buf := make([]byte, size)
	if _, err := stream.Read(buf); err != nil {
		return nil, errors.Join(fmt.Errorf("reading %s", fileURI), err)
	}
	return buf, nil
}
