package providers

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	compute "cloud.google.com/go/compute/apiv1"
	"cloud.google.com/go/compute/apiv1/computepb"
	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/resource"
	"github.com/pratik-mahalle/spendlens/internal/pkg/errors"
	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
)

// GCPClient reads costs from a BigQuery billing export and inventory from
// Compute Engine and Cloud Storage.
type GCPClient struct {
	log *logger.Logger
}

// NewGCPClient creates a live GCP backend.
func NewGCPClient(log *logger.Logger) *GCPClient {
	return &GCPClient{log: log.Provider(provider.GCP.String(), "live")}
}

func gcpOptions(creds provider.Credentials) []option.ClientOption {
	var opts []option.ClientOption
	if creds.GCPServiceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(creds.GCPServiceAccountJSON)))
	}
	return opts
}

type gcpCostRow struct {
	ServiceName string            `bigquery:"service_name"`
	Region      string            `bigquery:"region"`
	CostDate    bigquery.NullDate `bigquery:"cost_date"`
	DailyCost   float64           `bigquery:"daily_cost"`
	Currency    string            `bigquery:"currency"`
}

// FetchCosts sums the billing export per day, service and region.
func (c *GCPClient) FetchCosts(ctx context.Context, creds provider.Credentials, start, end time.Time) ([]cost.Record, error) {
	if creds.GCPBillingDataset == "" {
		return nil, errors.Unsupported(provider.GCP.String(), "costs without a billing export dataset")
	}

	client, err := bigquery.NewClient(ctx, creds.GCPProjectID, gcpOptions(creds)...)
	if err != nil {
		return nil, classify(provider.GCP, fmt.Errorf("failed to create BigQuery client: %w", err))
	}
	defer client.Close()

	q := client.Query(fmt.Sprintf(`
		SELECT
			service.description AS service_name,
			IFNULL(location.region, 'global') AS region,
			DATE(usage_start_time) AS cost_date,
			SUM(cost) AS daily_cost,
			currency
		FROM %s
		WHERE DATE(usage_start_time) BETWEEN @start_date AND @end_date
		GROUP BY service_name, region, cost_date, currency
		ORDER BY cost_date ASC, daily_cost DESC
	`, fmt.Sprintf("`%s`", creds.GCPBillingDataset)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "start_date", Value: start.Format(cost.DateLayout)},
		{Name: "end_date", Value: end.Format(cost.DateLayout)},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, classify(provider.GCP, fmt.Errorf("BigQuery query error: %w", err))
	}

	var records []cost.Record
	for {
		var row gcpCostRow
		err := it.Next(&row)
		if stderrors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classify(provider.GCP, fmt.Errorf("BigQuery row read error: %w", err))
		}
		if !row.CostDate.Valid {
			c.log.WarnWithErr(errors.MalformedData("billing row has no date", nil), "Dropping cost row")
			continue
		}
		if row.DailyCost == 0 {
			continue
		}
		d := row.CostDate.Date
		records = append(records, cost.Record{
			Date:     time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC),
			Amount:   row.DailyCost,
			Currency: nonEmpty(row.Currency, "USD"),
			Service:  row.ServiceName,
			Region:   row.Region,
		})
	}
	return keepValid(records, c.log), nil
}

// FetchResources lists Compute Engine instances across all zones and Cloud Storage buckets.
func (c *GCPClient) FetchResources(ctx context.Context, creds provider.Credentials) ([]resource.Resource, error) {
	opts := gcpOptions(creds)
	var out []resource.Resource

	instClient, err := compute.NewInstancesRESTClient(ctx, opts...)
	if err != nil {
		return nil, classify(provider.GCP, fmt.Errorf("compute client: %w", err))
	}
	defer instClient.Close()

	it := instClient.AggregatedList(ctx, &computepb.AggregatedListInstancesRequest{Project: creds.GCPProjectID})
	for {
		pair, err := it.Next()
		if stderrors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classify(provider.GCP, fmt.Errorf("compute aggregated list: %w", err))
		}
		if pair.Value == nil {
			continue
		}
		for _, inst := range pair.Value.Instances {
			out = append(out, gceResource(inst))
		}
	}

	stClient, err := storage.NewClient(ctx, opts...)
	if err != nil {
		c.log.WarnWithErr(err, "GCP storage client failed")
		return out, nil
	}
	defer stClient.Close()

	bit := stClient.Buckets(ctx, creds.GCPProjectID)
	for {
		attrs, err := bit.Next()
		if stderrors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			c.log.WarnWithErr(err, "GCP list buckets failed")
			break
		}
		out = append(out, resource.Resource{
			ID:       "gs://" + attrs.Name,
			Name:     attrs.Name,
			Type:     "Cloud Storage Bucket",
			Provider: provider.GCP,
			Region:   strings.ToLower(attrs.Location),
			Status:   resource.StatusRunning,
			Tags:     attrs.Labels,
		})
	}
	return out, nil
}

func gceResource(inst *computepb.Instance) resource.Resource {
	zone := inst.GetZone()
	if i := strings.LastIndex(zone, "/"); i >= 0 {
		zone = zone[i+1:]
	}
	return resource.Resource{
		ID:       strconv.FormatUint(inst.GetId(), 10),
		Name:     inst.GetName(),
		Type:     "Compute Engine VM Instance",
		Provider: provider.GCP,
		Region:   zone,
		Status:   gceStatus(inst.GetStatus()),
		Tags:     inst.GetLabels(),
	}
}

// gceStatus maps Compute Engine states. TERMINATED there means stopped.
func gceStatus(s string) string {
	switch s {
	case "TERMINATED", "STOPPING", "SUSPENDED", "SUSPENDING":
		return resource.StatusStopped
	}
	return resource.NormalizeStatus(s)
}

// FetchBudgets is not served by the live GCP backend.
func (c *GCPClient) FetchBudgets(ctx context.Context, creds provider.Credentials) ([]cost.Budget, error) {
	return nil, errors.Unsupported(provider.GCP.String(), "budgets")
}

// TestConnection succeeds when the project's buckets can be listed.
func (c *GCPClient) TestConnection(ctx context.Context, creds provider.Credentials) (bool, error) {
	client, err := storage.NewClient(ctx, gcpOptions(creds)...)
	if err != nil {
		return false, classify(provider.GCP, err)
	}
	defer client.Close()

	_, err = client.Buckets(ctx, creds.GCPProjectID).Next()
	if err != nil && !stderrors.Is(err, iterator.Done) {
		return false, classify(provider.GCP, err)
	}
	return true, nil
}
