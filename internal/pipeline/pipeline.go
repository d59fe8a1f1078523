package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/abothula/lowpass/internal/encoder"
	"github.com/abothula/lowpass/internal/profile"
	"github.com/abothula/lowpass/internal/report"
)

// Config holds all parameters for a pipeline run.
type Config struct {
	InputDir  string // scanned by Run
	OutputDir string // filtered bitmaps and previews are written here
	Profile   profile.Profile
	Workers   int
	Verbose   bool
	Log       io.Writer // defaults to os.Stderr
}

// Pipeline drives decode → filter → encode over one or many bitmaps.
type Pipeline struct {
	cfg     Config
	preview encoder.Encoder

	logMu sync.Mutex // workers share cfg.Log
}

// New creates a configured pipeline. It fails only when the profile asks
// for a preview format no encoder provides.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Log == nil {
		cfg.Log = os.Stderr
	}
	p := &Pipeline{cfg: cfg}

	if cfg.Profile.PreviewFormat != "" {
		reg := encoder.NewRegistry()
		enc, err := reg.Resolve(cfg.Profile.PreviewFormat)
		if err != nil {
			return nil, err
		}
		p.preview = enc
		p.logf("%s, previews as %s", reg.String(), enc.Format())
	}
	return p, nil
}

// Workers returns the effective worker count.
func (p *Pipeline) Workers() int { return p.cfg.Workers }

// logf prints a progress message only when Verbose is set.
func (p *Pipeline) logf(format string, args ...any) {
	if p.cfg.Verbose {
		p.printf(format, args...)
	}
}

func (p *Pipeline) printf(format string, args ...any) {
	p.logMu.Lock()
	defer p.logMu.Unlock()
	fmt.Fprintf(p.cfg.Log, "[lowpass] "+format+"\n", args...)
}

type processResult struct {
	key   string
	entry report.Entry
	err   error
}

// Run filters every bitmap under InputDir and returns the report.
// Files are independent: each is handled start to finish by one worker.
func (p *Pipeline) Run() (*report.Report, error) {
	if sameDir(p.cfg.InputDir, p.cfg.OutputDir) {
		return nil, fmt.Errorf("output directory %s is the input directory", p.cfg.OutputDir)
	}

	// Step 1: Scan for bitmaps.
	sources, err := ScanBitmaps(p.cfg.InputDir, p.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no bitmaps found in %s", p.cfg.InputDir)
	}
	p.logf("found %d bitmaps", len(sources))

	// Step 2: Filter in parallel. Sources that would write the same output
	// file fail without being read.
	results := make([]processResult, len(sources))
	shared := sharedKeys(sources)
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		if rival, ok := shared[i]; ok {
			results[i] = processResult{
				key: src.Key,
				err: fmt.Errorf("%s: output %s.bmp is also claimed by %s", src.RelPath, src.Key, rival),
			}
			continue
		}
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			results[idx] = p.processSource(s)
		}(i, src)
	}
	wg.Wait()

	// Step 3: Collect results into the report.
	r := report.New(p.cfg.Profile.Name)

	var (
		failed   int
		firstErr error
	)
	for _, res := range results {
		if res.err != nil {
			p.printf("error: %v", res.err)
			if firstErr == nil {
				firstErr = res.err
			}
			failed++
			continue
		}
		r.Files[res.key] = res.entry
	}

	// Partial failures are reported but do not fail the run.
	if failed > 0 {
		if failed == len(sources) {
			return nil, fmt.Errorf("all %d bitmaps failed to process, first: %w", failed, firstErr)
		}
		p.printf("warning: %d of %d bitmaps had errors", failed, len(sources))
	}

	r.BuildInfo = &report.BuildInfo{
		Workers:   p.cfg.Workers,
		MaxWidth:  p.cfg.Profile.MaxWidth,
		MaxHeight: p.cfg.Profile.MaxHeight,
	}
	r.Stats.Failed = failed
	r.ComputeStats()
	return r, nil
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func (p *Pipeline) processSource(s Source) processResult {
	res := processResult{key: s.Key}

	relOut := s.Key + ".bmp"
	if dir := filepath.Dir(filepath.FromSlash(relOut)); dir != "." {
		if err := os.MkdirAll(filepath.Join(p.cfg.OutputDir, dir), 0o755); err != nil {
			res.err = fmt.Errorf("create %s: %w", dir, err)
			return res
		}
	}

	res.entry, res.err = p.Process(s, relOut)
	if res.err == nil {
		p.logf("done: %s", s.Key)
	}
	return res
}
