package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	armcompute "github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	armresources "github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	armstorage "github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"

	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/resource"
	"github.com/pratik-mahalle/spendlens/internal/pkg/errors"
	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
)

// AzureClient reads costs from Cost Management and inventory from Resource Manager.
type AzureClient struct {
	log *logger.Logger
}

// NewAzureClient creates a live Azure backend.
func NewAzureClient(log *logger.Logger) *AzureClient {
	return &AzureClient{log: log.Provider(provider.Azure.String(), "live")}
}

func (c *AzureClient) credential(creds provider.Credentials) (azcore.TokenCredential, error) {
	cred, err := azidentity.NewClientSecretCredential(creds.AzureTenantID, creds.AzureClientID, creds.AzureClientSecret, nil)
	if err != nil {
		return nil, errors.ProviderAuthError(provider.Azure.String(), fmt.Errorf("failed to create Azure credential: %w", err))
	}
	return cred, nil
}

// FetchCosts runs a daily ActualCost query grouped by service and location.
func (c *AzureClient) FetchCosts(ctx context.Context, creds provider.Credentials, start, end time.Time) ([]cost.Record, error) {
	cred, err := c.credential(creds)
	if err != nil {
		return nil, err
	}
	client, err := armcostmanagement.NewQueryClient(cred, nil)
	if err != nil {
		return nil, classify(provider.Azure, fmt.Errorf("failed to create cost management client: %w", err))
	}

	from := cost.Day(start)
	to := cost.Day(end).Add(24*time.Hour - time.Second)
	sum := armcostmanagement.FunctionTypeSum
	dimension := armcostmanagement.QueryColumnTypeDimension
	granularity := armcostmanagement.GranularityTypeDaily
	timeframe := armcostmanagement.TimeframeTypeCustom
	exportType := armcostmanagement.ExportTypeActualCost

	query := armcostmanagement.QueryDefinition{
		Type:       &exportType,
		Timeframe:  &timeframe,
		TimePeriod: &armcostmanagement.QueryTimePeriod{From: &from, To: &to},
		Dataset: &armcostmanagement.QueryDataset{
			Granularity: &granularity,
			Aggregation: map[string]*armcostmanagement.QueryAggregation{
				"PreTaxCost": {Name: ptr("PreTaxCost"), Function: &sum},
			},
			Grouping: []*armcostmanagement.QueryGrouping{
				{Type: &dimension, Name: ptr("ServiceName")},
				{Type: &dimension, Name: ptr("ResourceLocation")},
			},
		},
	}

	scope := fmt.Sprintf("subscriptions/%s", creds.AzureSubscriptionID)
	result, err := client.Usage(ctx, scope, query, nil)
	if err != nil {
		return nil, classify(provider.Azure, fmt.Errorf("Azure Cost Management API error: %w", err))
	}
	if result.Properties == nil {
		return nil, nil
	}

	cols := make(map[string]int)
	for i, col := range result.Properties.Columns {
		if col != nil && col.Name != nil {
			cols[*col.Name] = i
		}
	}

	var records []cost.Record
	for _, row := range result.Properties.Rows {
		rec, err := azureRecord(cols, row)
		if err != nil {
			c.log.WarnWithErr(err, "Dropping cost row")
			continue
		}
		if rec.Amount == 0 {
			continue
		}
		records = append(records, rec)
	}
	return keepValid(records, c.log), nil
}

// azureRecord maps one query row using the column index.
func azureRecord(cols map[string]int, row []interface{}) (cost.Record, error) {
	rec := cost.Record{Currency: "USD"}
	get := func(name string) (interface{}, bool) {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return nil, false
		}
		return row[i], true
	}

	v, ok := get("PreTaxCost")
	if !ok {
		return rec, errors.MalformedData("cost row has no PreTaxCost column", nil)
	}
	amount, ok := v.(float64)
	if !ok {
		return rec, errors.MalformedData(fmt.Sprintf("PreTaxCost %v is not a number", v), nil)
	}
	rec.Amount = amount

	if v, ok := get("ServiceName"); ok {
		rec.Service, _ = v.(string)
	}
	if v, ok := get("ResourceLocation"); ok {
		rec.Region, _ = v.(string)
	}
	if v, ok := get("Currency"); ok {
		if s, _ := v.(string); s != "" {
			rec.Currency = s
		}
	}

	v, ok = get("UsageDate")
	if !ok {
		v, ok = get("UsageDateKey")
	}
	if !ok {
		return rec, errors.MalformedData("cost row has no usage date", nil)
	}
	switch d := v.(type) {
	case float64:
		// YYYYMMDD
		n := int(d)
		rec.Date = time.Date(n/10000, time.Month((n%10000)/100), n%100, 0, 0, 0, 0, time.UTC)
	case string:
		t, err := time.Parse(cost.DateLayout, d)
		if err != nil {
			return rec, errors.MalformedData(fmt.Sprintf("usage date %q", d), err)
		}
		rec.Date = t
	default:
		return rec, errors.MalformedData(fmt.Sprintf("usage date %v has unexpected type", v), nil)
	}
	return rec, nil
}

// FetchResources walks every resource group for VMs, scale sets and storage accounts.
func (c *AzureClient) FetchResources(ctx context.Context, creds provider.Credentials) ([]resource.Resource, error) {
	cred, err := c.credential(creds)
	if err != nil {
		return nil, err
	}
	sub := creds.AzureSubscriptionID

	rgClient, err := armresources.NewResourceGroupsClient(sub, cred, nil)
	if err != nil {
		return nil, classify(provider.Azure, err)
	}
	vmClient, err := armcompute.NewVirtualMachinesClient(sub, cred, nil)
	if err != nil {
		return nil, classify(provider.Azure, err)
	}
	vmssClient, err := armcompute.NewVirtualMachineScaleSetsClient(sub, cred, nil)
	if err != nil {
		return nil, classify(provider.Azure, err)
	}
	stClient, err := armstorage.NewAccountsClient(sub, cred, nil)
	if err != nil {
		return nil, classify(provider.Azure, err)
	}

	var out []resource.Resource
	rgPager := rgClient.NewListPager(nil)
	for rgPager.More() {
		page, err := rgPager.NextPage(ctx)
		if err != nil {
			return nil, classify(provider.Azure, fmt.Errorf("list resource groups: %w", err))
		}
		for _, rg := range page.Value {
			if rg == nil || rg.Name == nil {
				continue
			}
			group := *rg.Name
			log := c.log.With("resource_group", group)

			vmPager := vmClient.NewListPager(group, nil)
			for vmPager.More() {
				vmPage, err := vmPager.NextPage(ctx)
				if err != nil {
					log.WarnWithErr(err, "Azure list VMs failed")
					break
				}
				for _, vm := range vmPage.Value {
					if vm == nil || vm.ID == nil {
						continue
					}
					out = append(out, azureResource(*vm.ID, vm.Name, vm.Location, vm.Tags, "Virtual Machine"))
				}
			}

			vmssPager := vmssClient.NewListPager(group, nil)
			for vmssPager.More() {
				vmssPage, err := vmssPager.NextPage(ctx)
				if err != nil {
					log.WarnWithErr(err, "Azure list scale sets failed")
					break
				}
				for _, ss := range vmssPage.Value {
					if ss == nil || ss.ID == nil {
						continue
					}
					out = append(out, azureResource(*ss.ID, ss.Name, ss.Location, ss.Tags, "Virtual Machine Scale Set"))
				}
			}

			stPager := stClient.NewListByResourceGroupPager(group, nil)
			for stPager.More() {
				stPage, err := stPager.NextPage(ctx)
				if err != nil {
					log.WarnWithErr(err, "Azure list storage accounts failed")
					break
				}
				for _, acc := range stPage.Value {
					if acc == nil || acc.ID == nil {
						continue
					}
					out = append(out, azureResource(*acc.ID, acc.Name, acc.Location, acc.Tags, "Blob Storage Account"))
				}
			}
		}
	}
	return out, nil
}

func azureResource(id string, name, location *string, tags map[string]*string, typ string) resource.Resource {
	r := resource.Resource{
		ID:       id,
		Name:     id,
		Type:     typ,
		Provider: provider.Azure,
		Status:   resource.StatusRunning,
	}
	if name != nil {
		r.Name = *name
	}
	if location != nil {
		r.Region = *location
	}
	if len(tags) > 0 {
		r.Tags = make(map[string]string, len(tags))
		for k, v := range tags {
			if v != nil {
				r.Tags[k] = *v
			}
		}
	}
	return r
}

// FetchBudgets is not served by the live Azure backend.
func (c *AzureClient) FetchBudgets(ctx context.Context, creds provider.Credentials) ([]cost.Budget, error) {
	return nil, errors.Unsupported(provider.Azure.String(), "budgets")
}

// TestConnection succeeds when the first page of resource groups can be read.
func (c *AzureClient) TestConnection(ctx context.Context, creds provider.Credentials) (bool, error) {
	cred, err := c.credential(creds)
	if err != nil {
		return false, err
	}
	rgClient, err := armresources.NewResourceGroupsClient(creds.AzureSubscriptionID, cred, nil)
	if err != nil {
		return false, classify(provider.Azure, err)
	}
	pager := rgClient.NewListPager(nil)
	if pager.More() {
		if _, err := pager.NextPage(ctx); err != nil {
			return false, classify(provider.Azure, err)
		}
	}
	return true, nil
}

func ptr(s string) *string {
	return &s
}
