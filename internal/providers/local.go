package providers

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/resource"
	"github.com/pratik-mahalle/spendlens/internal/pkg/errors"
	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
)

// LocalClient serves provider data from <dir>/<provider>.yaml snapshots.
// Each record is decoded on its own so one bad entry never loses the file.
type LocalClient struct {
	dir string
	log *logger.Logger
}

// NewLocalClient creates a local backend rooted at dir.
func NewLocalClient(dir string, log *logger.Logger) *LocalClient {
	return &LocalClient{dir: dir, log: log}
}

// For binds the local backend to one provider.
func (c *LocalClient) For(id provider.ID) *LocalBackend {
	return &LocalBackend{
		path: filepath.Join(c.dir, id.String()+".yaml"),
		id:   id,
		log:  c.log.Provider(id.String(), "local"),
	}
}

// LocalBackend is the local backend for a single provider.
type LocalBackend struct {
	path string
	id   provider.ID
	log  *logger.Logger
}

type localFile struct {
	Connected *bool       `yaml:"connected"`
	Costs     []yaml.Node `yaml:"costs"`
	Resources []yaml.Node `yaml:"resources"`
	Budgets   []yaml.Node `yaml:"budgets"`
}

type localCost struct {
	Date     string  `yaml:"date"`
	Amount   float64 `yaml:"amount"`
	Currency string  `yaml:"currency"`
	Service  string  `yaml:"service"`
	Region   string  `yaml:"region"`
}

func (b *LocalBackend) load(ctx context.Context) (*localFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.ProviderAPIError(b.id.String(), fmt.Errorf("no local data at %s", b.path))
		}
		return nil, errors.ProviderAPIError(b.id.String(), err)
	}
	var f localFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.MalformedData(fmt.Sprintf("local data file %s", b.path), err)
	}
	return &f, nil
}

// FetchCosts returns the records dated inside [start, end].
func (b *LocalBackend) FetchCosts(ctx context.Context, creds provider.Credentials, start, end time.Time) ([]cost.Record, error) {
	f, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	window := cost.NewDateRange(start, end)
	records := make([]cost.Record, 0, len(f.Costs))
	for i := range f.Costs {
		var raw localCost
		if err := f.Costs[i].Decode(&raw); err != nil {
			b.malformed(i, "cost", err)
			continue
		}
		day, err := time.Parse(cost.DateLayout, raw.Date)
		if err != nil {
			b.malformed(i, "cost", err)
			continue
		}
		rec := cost.Record{
			Date:     day,
			Amount:   raw.Amount,
			Currency: nonEmpty(strings.ToUpper(raw.Currency), "USD"),
			Service:  raw.Service,
			Region:   raw.Region,
		}
		if err := rec.Validate(); err != nil {
			b.malformed(i, "cost", err)
			continue
		}
		if window.Contains(rec.Date) {
			records = append(records, rec)
		}
	}
	return records, nil
}

// FetchResources returns every resource in the snapshot, tagged with the provider.
func (b *LocalBackend) FetchResources(ctx context.Context, creds provider.Credentials) ([]resource.Resource, error) {
	f, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]resource.Resource, 0, len(f.Resources))
	for i := range f.Resources {
		var r resource.Resource
		if err := f.Resources[i].Decode(&r); err != nil {
			b.malformed(i, "resource", err)
			continue
		}
		if r.ID == "" {
			b.malformed(i, "resource", stderrors.New("missing id"))
			continue
		}
		if r.Utilization != nil && (*r.Utilization < 0 || *r.Utilization > 100) {
			b.malformed(i, "resource", fmt.Errorf("utilization %.2f out of range", *r.Utilization))
			continue
		}
		r.Provider = b.id
		r.Status = resource.NormalizeStatus(r.Status)
		r.Cost = 0
		if r.Name == "" {
			r.Name = r.ID
		}
		out = append(out, r)
	}
	return out, nil
}

// FetchBudgets returns every budget in the snapshot, tagged with the provider.
func (b *LocalBackend) FetchBudgets(ctx context.Context, creds provider.Credentials) ([]cost.Budget, error) {
	f, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]cost.Budget, 0, len(f.Budgets))
	for i := range f.Budgets {
		var budget cost.Budget
		if err := f.Budgets[i].Decode(&budget); err != nil {
			b.malformed(i, "budget", err)
			continue
		}
		if budget.Amount < 0 || budget.Spent < 0 || !cost.ValidPeriod(budget.Period) {
			b.malformed(i, "budget", fmt.Errorf("invalid budget %q", budget.Name))
			continue
		}
		budget.Provider = b.id
		out = append(out, budget)
	}
	return out, nil
}

// TestConnection succeeds when the snapshot exists and is not marked disconnected.
func (b *LocalBackend) TestConnection(ctx context.Context, creds provider.Credentials) (bool, error) {
	f, err := b.load(ctx)
	if err != nil {
		return false, err
	}
	if f.Connected != nil && !*f.Connected {
		return false, nil
	}
	return true, nil
}

func (b *LocalBackend) malformed(index int, kind string, err error) {
	b.log.WithFields(map[string]interface{}{
		"index": index,
		"kind":  kind,
		"file":  b.path,
	}).WarnWithErr(errors.MalformedData("unparseable local record", err), "Dropping malformed record")
}
