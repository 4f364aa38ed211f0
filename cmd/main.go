package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/alitto/pond"
	"github.com/urfave/cli/v2"

	geonoise "github.com/KanuToCL/geonoise"
	"github.com/KanuToCL/geonoise/encode"
	"github.com/KanuToCL/geonoise/internal/scene"
	"github.com/KanuToCL/geonoise/internal/store"
	"github.com/KanuToCL/geonoise/search"
)

// loadScene reads and decodes a scene document from sceneURI through
// the same TileDB VFS abstraction used to write responses, so a scene
// can live on a local path or an object store indifferently.
func loadScene(sceneURI, configURI string) (*scene.Scene, error) {
	raw, err := encode.ReadJSON(sceneURI, configURI)
	if err != nil {
		return nil, err
	}
	var sc scene.Scene
	if err := json.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("decoding scene %s: %w", sceneURI, err)
	}
	return &sc, nil
}

// outName derives an output URI from sceneURI and a suffix, the way
// the teacher's convert_gsf derives "<file>-metadata.json" from
// gsf_uri.
func outName(sceneURI, outdirURI, suffix string) string {
	dir, file := filepath.Split(sceneURI)
	if outdirURI == "" {
		outdirURI = dir
	}
	file = strings.TrimSuffix(file, filepath.Ext(file))
	return filepath.Join(outdirURI, file+suffix)
}

// runReceivers evaluates every receiver in a scene and writes the
// response alongside it.
func runReceivers(ctx context.Context, eng *geonoise.Engine, sceneURI, configURI, outdirURI, requestID string) error {
	log.Println("Processing scene:", sceneURI)
	sc, err := loadScene(sceneURI, configURI)
	if err != nil {
		return err
	}

	resp, err := eng.ComputeReceivers(ctx, &geonoise.ComputeRequest{
		Kind:      geonoise.KindReceivers,
		Scene:     sc,
		Config:    sc.Config,
		RequestID: requestID,
	})
	if err != nil {
		return err
	}

	jsn, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}

	out := outName(sceneURI, outdirURI, "-receivers.json")
	log.Println("Writing receivers response:", out)
	_, err = encode.WriteJSON(out, configURI, jsn)
	return err
}

// runPanel evaluates one named panel and writes the response,
// optionally caching its samples as a TileDB array via internal/store
// when cacheURI is set.
func runPanel(ctx context.Context, eng *geonoise.Engine, sceneURI, configURI, outdirURI, requestID, panelID, cacheURI string) error {
	log.Println("Processing scene:", sceneURI)
	sc, err := loadScene(sceneURI, configURI)
	if err != nil {
		return err
	}

	resp, err := eng.ComputePanel(ctx, &geonoise.ComputeRequest{
		Kind:      geonoise.KindPanel,
		Scene:     sc,
		Config:    sc.Config,
		RequestID: requestID,
		PanelID:   panelID,
	})
	if err != nil {
		return err
	}

	if cacheURI != "" {
		points := make([]store.PanelPoint, len(resp.Samples))
		for i, s := range resp.Samples {
			points[i] = store.PanelPoint{PointID: uint64(i), X: s.X, Y: s.Y, Z: s.Z, LAeq: s.LAeq}
		}
		log.Println("Caching panel samples:", cacheURI)
		if err := store.PutPanel(cacheURI, configURI, points); err != nil {
			return err
		}
	}

	jsn, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}

	out := outName(sceneURI, outdirURI, "-panel-"+panelID+".json")
	log.Println("Writing panel response:", out)
	_, err = encode.WriteJSON(out, configURI, jsn)
	return err
}

// runGrid lays out and evaluates the scene's grid, optionally caching
// the raster as a TileDB dense array via internal/store when cacheURI
// is set.
func runGrid(ctx context.Context, eng *geonoise.Engine, sceneURI, configURI, outdirURI, requestID, cacheURI string) error {
	log.Println("Processing scene:", sceneURI)
	sc, err := loadScene(sceneURI, configURI)
	if err != nil {
		return err
	}
	if sc.Grid == nil {
		return fmt.Errorf("scene %s has no grid configuration", sceneURI)
	}

	resp, err := eng.ComputeGrid(ctx, &geonoise.ComputeRequest{
		Kind:      geonoise.KindGrid,
		Scene:     sc,
		Config:    sc.Config,
		RequestID: requestID,
		Grid:      sc.Grid,
	})
	if err != nil {
		return err
	}

	if cacheURI != "" {
		log.Println("Caching grid raster:", cacheURI)
		if err := store.PutGrid(cacheURI, configURI, resp.Cols, resp.Rows, resp.Values); err != nil {
			return err
		}
	}

	jsn, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}

	out := outName(sceneURI, outdirURI, "-grid.json")
	log.Println("Writing grid response:", out)
	_, err = encode.WriteJSON(out, configURI, jsn)
	return err
}

// runProbe reads an ad hoc probe request document (not a full scene)
// and writes its response.
func runProbe(eng *geonoise.Engine, requestURI, configURI, outdirURI string) error {
	log.Println("Processing probe request:", requestURI)
	raw, err := encode.ReadJSON(requestURI, configURI)
	if err != nil {
		return err
	}
	var req geonoise.ProbeRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("decoding probe request %s: %w", requestURI, err)
	}

	resp, err := eng.Probe(&req)
	if err != nil {
		return err
	}

	jsn, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}

	out := outName(requestURI, outdirURI, "-probe.json")
	log.Println("Writing probe response:", out)
	_, err = encode.WriteJSON(out, configURI, jsn)
	return err
}

// runBatch finds every scene document under uri and submits one
// receivers compute per scene to a fixed worker pool, the way the
// teacher's convert_gsf_list spreads conversions across 2*n_CPUs
// workers.
func runBatch(ctx context.Context, eng *geonoise.Engine, uri, configURI, outdirURI string) error {
	log.Println("Searching uri:", uri)
	items, err := search.FindScenes(uri, configURI)
	if err != nil {
		return err
	}
	log.Println("Number of scenes to process:", len(items))

	n := runtime.NumCPU() * 2
	pool := pond.New(n, 0, pond.MinWorkers(n), pond.Context(ctx))
	defer pool.StopAndWait()

	for _, name := range items {
		sceneURI := name
		pool.Submit(func() {
			if err := runReceivers(ctx, eng, sceneURI, configURI, outdirURI, sceneURI); err != nil {
				log.Println("error processing", sceneURI, ":", err)
			}
		})
	}

	return nil
}

func main() {
	eng := geonoise.NewEngine("cpu-0")

	sceneFlag := &cli.StringFlag{
		Name:     "scene-uri",
		Usage:    "URI or pathname to a scene document.",
		Required: true,
	}
	configFlag := &cli.StringFlag{
		Name:  "config-uri",
		Usage: "URI or pathname to a TileDB config file.",
	}
	outdirFlag := &cli.StringFlag{
		Name:  "outdir-uri",
		Usage: "URI or pathname to an output directory.",
	}
	requestIDFlag := &cli.StringFlag{
		Name:  "request-id",
		Usage: "Identifier used to detect a superseded request; defaults to the scene URI.",
	}
	cacheFlag := &cli.StringFlag{
		Name:  "cache-uri",
		Usage: "URI or pathname of a TileDB array to cache the result into.",
	}

	app := &cli.App{
		Name:  "geonoise",
		Usage: "coherent-spectral outdoor sound propagation engine",
		Commands: []*cli.Command{
			{
				Name:  "receivers",
				Usage: "Evaluate every enabled receiver in a scene.",
				Flags: []cli.Flag{sceneFlag, configFlag, outdirFlag, requestIDFlag},
				Action: func(cCtx *cli.Context) error {
					reqID := cCtx.String("request-id")
					if reqID == "" {
						reqID = cCtx.String("scene-uri")
					}
					return runReceivers(cCtx.Context, eng, cCtx.String("scene-uri"), cCtx.String("config-uri"), cCtx.String("outdir-uri"), reqID)
				},
			},
			{
				Name:  "panel",
				Usage: "Evaluate one named panel of a scene.",
				Flags: []cli.Flag{
					sceneFlag, configFlag, outdirFlag, requestIDFlag, cacheFlag,
					&cli.StringFlag{Name: "panel-id", Usage: "Identifier of the panel to evaluate.", Required: true},
				},
				Action: func(cCtx *cli.Context) error {
					reqID := cCtx.String("request-id")
					if reqID == "" {
						reqID = cCtx.String("scene-uri")
					}
					return runPanel(cCtx.Context, eng, cCtx.String("scene-uri"), cCtx.String("config-uri"), cCtx.String("outdir-uri"), reqID, cCtx.String("panel-id"), cCtx.String("cache-uri"))
				},
			},
			{
				Name:  "grid",
				Usage: "Lay out and evaluate a scene's listening grid.",
				Flags: []cli.Flag{sceneFlag, configFlag, outdirFlag, requestIDFlag, cacheFlag},
				Action: func(cCtx *cli.Context) error {
					reqID := cCtx.String("request-id")
					if reqID == "" {
						reqID = cCtx.String("scene-uri")
					}
					return runGrid(cCtx.Context, eng, cCtx.String("scene-uri"), cCtx.String("config-uri"), cCtx.String("outdir-uri"), reqID, cCtx.String("cache-uri"))
				},
			},
			{
				Name:  "probe",
				Usage: "Evaluate an ad hoc probe request document.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "request-uri", Usage: "URI or pathname to a probe request document.", Required: true},
					configFlag, outdirFlag,
				},
				Action: func(cCtx *cli.Context) error {
					return runProbe(eng, cCtx.String("request-uri"), cCtx.String("config-uri"), cCtx.String("outdir-uri"))
				},
			},
			{
				Name:  "batch",
				Usage: "Evaluate every scene document found under a URI.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "uri", Usage: "URI or pathname to a directory containing scene documents.", Required: true},
					configFlag, outdirFlag,
				},
				Action: func(cCtx *cli.Context) error {
					return runBatch(cCtx.Context, eng, cCtx.String("uri"), cCtx.String("config-uri"), cCtx.String("outdir-uri"))
				},
			},
			{
				Name:  "grid-from-cache",
				Usage: "Read back a previously cached grid raster and report its sample count.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "cache-uri", Required: true},
					configFlag,
					&cli.StringFlag{Name: "cols", Required: true},
					&cli.StringFlag{Name: "rows", Required: true},
				},
				Action: func(cCtx *cli.Context) error {
					cols, err := strconv.Atoi(cCtx.String("cols"))
					if err != nil {
						return err
					}
					rows, err := strconv.Atoi(cCtx.String("rows"))
					if err != nil {
						return err
					}
					values, err := store.GetGrid(cCtx.String("cache-uri"), cCtx.String("config-uri"), cols, rows)
					if err != nil {
						return err
					}
					log.Printf("read %d cached values from %s\n", len(values), cCtx.String("cache-uri"))
					return nil
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
