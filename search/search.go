// Package search recursively trawls a URI for scene documents, the way
// the teacher's search.go trawls for *.gsf files -- used by the CLI's
// batch subcommand to run a compute request over every scene under a
// directory or object-store prefix.
package search

import (
	"errors"
	"fmt"
	"path/filepath"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
)

func trawl(vfs *tiledb.VFS, pattern, uri string, items []string) ([]string, error) {
	dirs, files, err := vfs.List(uri)
	if err != nil {
		return items, fmt.Errorf("listing %s: %w", uri, err)
	}

	for _, file := range files {
		match, err := filepath.Match(pattern, filepath.Base(file))
		if err != nil {
			return items, err
		}
		if match {
			items = append(items, file)
		}
	}

	for _, dir := range dirs {
		items, err = trawl(vfs, pattern, dir, items)
		if err != nil {
			return items, err
		}
	}

	return items, nil
}

// FindScenes recursively finds every *.scene.json document under uri.
// It uses the TileDB Go VFS bindings so the same call works against a
// local filesystem or an object store such as S3, exactly as the
// teacher's FindGsf does for GSF files -- a TileDB config is required
// when the store needs credentials.
func FindScenes(uri, configURI string) ([]string, error) {
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
		return nil, errors.Join(errors.New("loading tiledb config"), err)
	}
	defer config.Free()

	ctx, err := tiledb.NewContext(config)
	if err != nil {
		return nil, errors.Join(errors.New("creating tiledb context"), err)
	}
	defer ctx.Free()

	vfs, err := tiledb.NewVFS(ctx, config)
	if err != nil {
		return nil, errors.Join(errors.New("creating tiledb vfs"), err)
	}
	defer vfs.Free()

	return trawl(vfs, "*.scene.json", uri, make([]string, 0))
}
