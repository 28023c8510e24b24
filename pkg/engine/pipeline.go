package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"allocation/pkg/parser"
	"allocation/pkg/schema"
)

// Default input locations, relative to the working directory.
const (
	DefaultCostsPath     = "allocations.cfg"
	DefaultDirectoryPath = "employees.dat"
)

// Pipeline wires the loaders, the validator and the aggregator for one run.
type Pipeline struct {
	Fs              afero.Fs
	CostsPath       string
	DirectoryPath   string
	DuplicatePolicy DuplicatePolicy
	BaseCost        int
	Log             logrus.FieldLogger
}

// NewPipeline returns a Pipeline over fs with default paths and policy.
func NewPipeline(fs afero.Fs) *Pipeline {
	return &Pipeline{
		Fs:              fs,
		CostsPath:       DefaultCostsPath,
		DirectoryPath:   DefaultDirectoryPath,
		DuplicatePolicy: DuplicateWarn,
		BaseCost:        DefaultManagerBaseCost,
	}
}

// Run computes the allocation for rawID.
//
// Steps run strictly in order and the first failure ends the run: the id is
// format-checked before anything is read, the role-cost table is loaded
// (so a bad cost fails before any aggregation), then the directory, then the
// root is resolved and the chain aggregated.
func (p *Pipeline) Run(rawID string) (*AggregationResult, error) {
	log := p.Log
	if log == nil {
		log = discardLogger()
	}

	id, err := ValidateEntryID(rawID)
	if err != nil {
		return nil, err
	}

	costs, err := p.LoadCosts(log)
	if err != nil {
		return nil, err
	}

	dir, err := p.LoadDirectory(log)
	if err != nil {
		return nil, err
	}

	// Aggregate resolves the root itself.
	agg := NewAggregator(dir, costs, WithBaseCost(p.BaseCost), WithLogger(log))
	return agg.Aggregate(id)
}

// LoadCosts reads and parses the role-cost configuration.
func (p *Pipeline) LoadCosts(log logrus.FieldLogger) (*RoleCostTable, error) {
	res, err := p.parseFile(p.CostsPath, log)
	if err != nil {
		return nil, err
	}
	costs, err := LoadRoleCosts(res, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.CostsPath, err)
	}
	return costs, nil
}

// LoadDirectory reads and parses the employee directory.
func (p *Pipeline) LoadDirectory(log logrus.FieldLogger) (*Directory, error) {
	res, err := p.parseFile(p.DirectoryPath, log)
	if err != nil {
		return nil, err
	}
	dir, err := LoadDirectory(res, p.DuplicatePolicy, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.DirectoryPath, err)
	}
	return dir, nil
}

func (p *Pipeline) parseFile(path string, log logrus.FieldLogger) (*parser.ParseResult, error) {
	f, err := p.Fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	res, err := parser.StreamParse(f, schema.FieldDelimiter)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for _, w := range res.Warnings {
		log.WithFields(logrus.Fields{"file": path, "row": w.Row}).Warn(w.Message)
	}
	log.WithFields(logrus.Fields{
		"file":     path,
		"lines":    len(res.Lines),
		"encoding": res.Encoding,
	}).Debug("Read input file")
	return res, nil
}
