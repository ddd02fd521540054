package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"spacex-dashboard/internal/aggregate"
	"spacex-dashboard/internal/model"
	"spacex-dashboard/internal/render"
	"spacex-dashboard/pkg/utils"
)

// ManifestName is written next to the chart images of every run
const ManifestName = "manifest.json"

// File is one exported chart
type File struct {
	Name  string `json:"name"`
	Chart string `json:"chart"`
	Site  string `json:"site"`
	Type  string `json:"type"`
	Size  int64  `json:"size"`
	Items int    `json:"items"`
}

// Result describes a finished export run
type Result struct {
	RunID     string        `json:"run_id"`
	Dir       string        `json:"dir"`
	Source    string        `json:"source"`
	Format    render.Format `json:"format"`
	Files     []File        `json:"files"`
	CreatedAt time.Time     `json:"created_at"`
}

// Exporter writes the pie and full-range scatter charts for ALL and for
// every site into a fresh run directory.
type Exporter struct {
	ds       *model.Dataset
	renderer *render.Renderer
	outputs  *utils.OutputManager
	log      *zap.Logger

	// Workers bounds concurrent renders; zero means 4.
	Workers int
}

// New creates an exporter writing under outputs
func New(ds *model.Dataset, renderer *render.Renderer, outputs *utils.OutputManager, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{ds: ds, renderer: renderer, outputs: outputs, log: log}
}

type job struct {
	chart string
	site  string
	name  string
}

func (e *Exporter) jobs(f render.Format) []job {
	sites := append([]string{model.AllSites}, e.ds.Sites()...)
	slugs := uniqueSlugs(sites)
	jobs := make([]job, 0, 2*len(sites))
	for _, chart := range []string{"pie", "scatter"} {
		for i, site := range sites {
			jobs = append(jobs, job{
				chart: chart,
				site:  site,
				name:  fmt.Sprintf("%s-%s.%s", chart, slugs[i], f),
			})
		}
	}
	return jobs
}

// uniqueSlugs slugs every name, numbering repeats ("a", "a-2", ...) so that
// distinct sites never share a file.
func uniqueSlugs(names []string) []string {
	used := make(map[string]bool, len(names))
	out := make([]string, len(names))
	for i, name := range names {
		base := utils.Slug(name)
		if base == "" {
			base = "site"
		}
		slug := base
		for n := 2; used[slug]; n++ {
			slug = fmt.Sprintf("%s-%d", base, n)
		}
		used[slug] = true
		out[i] = slug
	}
	return out
}

// Run renders every chart in format f. The first failure cancels the
// remaining renders.
func (e *Exporter) Run(ctx context.Context, f render.Format) (*Result, error) {
	if e.ds == nil {
		return nil, aggregate.ErrNoDataset
	}
	if err := e.outputs.EnsureOutputDirExists(); err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	dir, err := e.outputs.CreateRunOutputDir(runID)
	if err != nil {
		return nil, err
	}
	e.log.Info("export started", zap.String("run_id", runID), zap.String("dir", dir), zap.String("format", string(f)))

	workers := e.Workers
	if workers <= 0 {
		workers = 4
	}

	var (
		mu    sync.Mutex
		files []File
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, j := range e.jobs(f) {
		j := j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			file, err := e.write(runID, j, f)
			if err != nil {
				return fmt.Errorf("export %s: %w", j.name, err)
			}
			mu.Lock()
			files = append(files, file)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.log.Error("export failed", zap.String("run_id", runID), zap.Error(err))
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	res := &Result{
		RunID:     runID,
		Dir:       dir,
		Source:    e.ds.Source(),
		Format:    f,
		Files:     files,
		CreatedAt: time.Now().UTC(),
	}
	if err := e.writeManifest(res); err != nil {
		return nil, err
	}
	e.log.Info("export finished", zap.String("run_id", runID), zap.Int("files", len(files)))
	return res, nil
}

func (e *Exporter) write(runID string, j job, f render.Format) (File, error) {
	var (
		img   []byte
		items int
		err   error
	)
	switch j.chart {
	case "pie":
		var spec model.PieChartSpec
		if spec, err = aggregate.ComputePieChart(e.ds, j.site); err != nil {
			return File{}, err
		}
		items = len(spec.Slices)
		img, err = e.renderer.Pie(spec, f)
	default:
		var spec model.ScatterChartSpec
		if spec, err = aggregate.ComputeScatterChart(e.ds, j.site, e.ds.PayloadBounds()); err != nil {
			return File{}, err
		}
		items = len(spec.Points)
		img, err = e.renderer.Scatter(spec, f)
	}
	if err != nil {
		return File{}, err
	}

	path, err := e.outputs.GetOutputFilePath(runID, j.name)
	if err != nil {
		return File{}, err
	}
	if err := os.WriteFile(path, img, 0644); err != nil {
		return File{}, err
	}
	size, err := e.outputs.GetFileSize(path)
	if err != nil {
		return File{}, err
	}

	e.log.Debug("chart exported", zap.String("file", j.name), zap.Int("items", items))
	return File{
		Name:  j.name,
		Chart: j.chart,
		Site:  j.site,
		Type:  e.outputs.GetFileType(j.name),
		Size:  size,
		Items: items,
	}, nil
}

func (e *Exporter) writeManifest(res *Result) error {
	path, err := e.outputs.GetOutputFilePath(res.RunID, ManifestName)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
