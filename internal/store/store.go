// Package store is an optional result cache layered above the pure
// engine (§5: the engine itself stays a pure function; a cache is a
// caller convenience). It persists computed grid rasters and panel
// samples as TileDB arrays at a caller-chosen URI, the same role TileDB
// plays for the teacher repo -- a durable array store for computed
// products -- scaled down from the teacher's multi-array group layout
// (Attitude.tiledb, SVP.tiledb, beam arrays under one group) to the
// single dense or sparse array one grid/panel result needs.
//
// Struct tags follow the teacher's svp.go/schema.go convention and are
// parsed with github.com/yuin/stagparser exactly as CreateAttr does
// there: `tiledb:"dtype=...,ftype=attr|dim"` plus a `filters:"..."`
// tag consumed only for attribute fields.
package store

import (
	"errors"
	"fmt"
	"reflect"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	stgpsr "github.com/yuin/stagparser"
)

var (
	ErrCreateArray = errors.New("store: error creating tiledb array")
	ErrWriteArray  = errors.New("store: error writing tiledb array")
	ErrReadArray   = errors.New("store: error reading tiledb array")
)

// GridRow is the attribute record of one cached grid raster. RowID and
// ColID are dimensions (ftype=dim, skipped by createAttrs) set up by hand
// in PutGrid, the way the teacher always hand-builds its dimensions
// and only reflects attribute fields.
type GridRow struct {
	RowID uint64  `tiledb:"dtype=uint64,ftype=dim"`
	ColID uint64  `tiledb:"dtype=uint64,ftype=dim"`
	Value float64 `tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
}

// PanelPoint is the attribute record of one cached panel sample.
type PanelPoint struct {
	PointID uint64  `tiledb:"dtype=uint64,ftype=dim"`
	X       float64 `tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	Y       float64 `tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	Z       float64 `tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	LAeq    float64 `tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
}

// zstdFilterList builds a single-stage zstd filter pipeline at the level
// named in fieldDefs["filters"], the way the teacher's CreateAttr reads
// one filter tag at a time off the struct's `filters` tag.
func zstdFilterList(ctx *tiledb.Context, def stgpsr.Definition) (*tiledb.FilterList, error) {
	list, err := tiledb.NewFilterList(ctx)
	if err != nil {
		return nil, err
	}
	level, ok := def.Attribute("level")
	if !ok {
		level = int64(16)
	}
	filt, err := tiledb.NewFilter(ctx, tiledb.TILEDB_FILTER_ZSTD)
	if err != nil {
		list.Free()
		return nil, err
	}
	defer filt.Free()
	if err := filt.SetOption(tiledb.TILEDB_COMPRESSION_LEVEL, int32(level.(int64))); err != nil {
		list.Free()
		return nil, err
	}
	if err := list.AddFilter(filt); err != nil {
		list.Free()
		return nil, err
	}
	return list, nil
}

// attrDtype maps a stagparser dtype tag value to a tiledb datatype, the
// subset CreateAttr in the teacher's tiledb.go supports that this store
// actually needs.
func attrDtype(name string) (tiledb.Datatype, error) {
	switch name {
	case "uint64":
		return tiledb.TILEDB_UINT64, nil
	case "float64":
		return tiledb.TILEDB_FLOAT64, nil
	default:
		return 0, fmt.Errorf("store: unsupported dtype %q", name)
	}
}

// createAttrs reflects over rec's exported fields, skipping ftype=dim
// fields, and adds a tiledb attribute (with its filter pipeline) to
// schema for each ftype=attr field -- the same pattern as the teacher's
// schemaAttrs/CreateAttr pair, trimmed to the single zstd filter this
// store always uses.
func createAttrs(ctx *tiledb.Context, schema *tiledb.ArraySchema, rec any) error {
	tdbDefs, err := stgpsr.ParseStruct(rec, "tiledb")
	if err != nil {
		return fmt.Errorf("%w: parsing tiledb tags: %v", ErrCreateArray, err)
	}
	filtDefs, _ := stgpsr.ParseStruct(rec, "filters")

	t := reflect.TypeOf(rec)
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Name
		fieldDefs := map[string]stgpsr.Definition{}
		for _, d := range tdbDefs[name] {
			fieldDefs[d.Name()] = d
		}
		ftypeDef, ok := fieldDefs["ftype"]
		if !ok {
			return fmt.Errorf("%w: field %s missing ftype tag", ErrCreateArray, name)
		}
		ftype, _ := ftypeDef.Attribute("ftype")
		if ftype == "dim" {
			continue
		}

		dtypeDef, ok := fieldDefs["dtype"]
		if !ok {
			return fmt.Errorf("%w: field %s missing dtype tag", ErrCreateArray, name)
		}
		dtypeName, _ := dtypeDef.Attribute("dtype")
		dtype, err := attrDtype(dtypeName.(string))
		if err != nil {
			return err
		}

		attr, err := tiledb.NewAttribute(ctx, name, dtype)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCreateArray, err)
		}
		defer attr.Free()

		for _, fd := range filtDefs[name] {
			if fd.Name() != "zstd" {
				continue
			}
			filters, err := zstdFilterList(ctx, fd)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrCreateArray, err)
			}
			err = attr.SetFilterList(filters)
			filters.Free()
			if err != nil {
				return fmt.Errorf("%w: %v", ErrCreateArray, err)
			}
		}

		if err := schema.AddAttributes(attr); err != nil {
			return fmt.Errorf("%w: %v", ErrCreateArray, err)
		}
	}
	return nil
}

// openContext builds a context from configURI, or a generic config when
// empty, matching the "load if given, else sane defaults" pattern used
// throughout the teacher's TileDB call sites.
func openContext(configURI string) (*tiledb.Context, *tiledb.Config, error) {
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
		return nil, nil, err
	}
	ctx, err := tiledb.NewContext(config)
	if err != nil {
		config.Free()
		return nil, nil, err
	}
	return ctx, config, nil
}

// PutGrid writes a computed grid raster (cols x rows, row-major values)
// to uri as a dense TileDB array, creating the array fresh each call --
// grid results are request-scoped, not appended to over time.
func PutGrid(uri, configURI string, cols, rows int, values []float64) error {
	ctx, config, err := openContext(configURI)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateArray, err)
	}
	defer ctx.Free()
	defer config.Free()

	domain, err := tiledb.NewDomain(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateArray, err)
	}
	defer domain.Free()

	rowDim, err := tiledb.NewDimension(ctx, "RowID", tiledb.TILEDB_UINT64, []uint64{0, uint64(rows - 1)}, uint64(rows))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateArray, err)
	}
	defer rowDim.Free()
	colDim, err := tiledb.NewDimension(ctx, "ColID", tiledb.TILEDB_UINT64, []uint64{0, uint64(cols - 1)}, uint64(cols))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateArray, err)
	}
	defer colDim.Free()

	if err := domain.AddDimensions(rowDim, colDim); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateArray, err)
	}

	schema, err := tiledb.NewArraySchema(ctx, tiledb.TILEDB_DENSE)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateArray, err)
	}
	defer schema.Free()

	if err := schema.SetDomain(domain); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateArray, err)
	}
	if err := schema.SetCellOrder(tiledb.TILEDB_ROW_MAJOR); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateArray, err)
	}
	if err := schema.SetTileOrder(tiledb.TILEDB_ROW_MAJOR); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateArray, err)
	}
	if err := createAttrs(ctx, schema, GridRow{}); err != nil {
		return err
	}

	array, err := tiledb.NewArray(ctx, uri)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateArray, err)
	}
	defer array.Free()
	if err := array.Create(schema); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateArray, err)
	}

	if err := array.Open(tiledb.TILEDB_WRITE); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteArray, err)
	}
	defer array.Close()

	query, err := tiledb.NewQuery(ctx, array)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteArray, err)
	}
	defer query.Free()

	if err := query.SetLayout(tiledb.TILEDB_ROW_MAJOR); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("Value", values); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteArray, err)
	}
	if err := query.Submit(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteArray, err)
	}
	return nil
}

// GetGrid reads back a grid raster written by PutGrid.
func GetGrid(uri, configURI string, cols, rows int) ([]float64, error) {
	ctx, config, err := openContext(configURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadArray, err)
	}
	defer ctx.Free()
	defer config.Free()

	array, err := tiledb.NewArray(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadArray, err)
	}
	defer array.Free()
	if err := array.Open(tiledb.TILEDB_READ); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadArray, err)
	}
	defer array.Close()

	query, err := tiledb.NewQuery(ctx, array)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadArray, err)
	}
	defer query.Free()

	subarray, err := tiledb.NewSubarray(ctx, array)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadArray, err)
	}
	defer subarray.Free()
	if err := subarray.SetSubArray([]uint64{0, uint64(rows - 1), 0, uint64(cols - 1)}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadArray, err)
	}
	if err := query.SetSubarray(subarray); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadArray, err)
	}

	values := make([]float64, cols*rows)
	if _, err := query.SetDataBuffer("Value", values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadArray, err)
	}
	if err := query.Submit(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadArray, err)
	}
	return values, nil
}

// PutPanel writes a panel's sampled points to uri as a sparse TileDB
// array keyed by sample index.
func PutPanel(uri, configURI string, points []PanelPoint) error {
	ctx, config, err := openContext(configURI)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateArray, err)
	}
	defer ctx.Free()
	defer config.Free()

	n := uint64(len(points))
	if n == 0 {
		return fmt.Errorf("%w: no points to write", ErrCreateArray)
	}

	domain, err := tiledb.NewDomain(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateArray, err)
	}
	defer domain.Free()

	dim, err := tiledb.NewDimension(ctx, "PointID", tiledb.TILEDB_UINT64, []uint64{0, n - 1}, n)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateArray, err)
	}
	defer dim.Free()
	if err := domain.AddDimensions(dim); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateArray, err)
	}

	schema, err := tiledb.NewArraySchema(ctx, tiledb.TILEDB_SPARSE)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateArray, err)
	}
	defer schema.Free()
	if err := schema.SetDomain(domain); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateArray, err)
	}
	if err := createAttrs(ctx, schema, PanelPoint{}); err != nil {
		return err
	}

	array, err := tiledb.NewArray(ctx, uri)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateArray, err)
	}
	defer array.Free()
	if err := array.Create(schema); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateArray, err)
	}

	if err := array.Open(tiledb.TILEDB_WRITE); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteArray, err)
	}
	defer array.Close()

	query, err := tiledb.NewQuery(ctx, array)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteArray, err)
	}
	defer query.Free()
	if err := query.SetLayout(tiledb.TILEDB_UNORDERED); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteArray, err)
	}

	ids := make([]uint64, n)
	xs := make([]float64, n)
	ys := make([]float64, n)
	zs := make([]float64, n)
	laeqs := make([]float64, n)
	for i, p := range points {
		ids[i] = uint64(i)
		xs[i] = p.X
		ys[i] = p.Y
		zs[i] = p.Z
		laeqs[i] = p.LAeq
	}

	if _, err := query.SetDataBuffer("PointID", ids); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("X", xs); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("Y", ys); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("Z", zs); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteArray, err)
	}
	if _, err := query.SetDataBuffer("LAeq", laeqs); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteArray, err)
	}
	return query.Submit()
}
