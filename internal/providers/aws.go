package providers

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/resource"
	"github.com/pratik-mahalle/spendlens/internal/pkg/errors"
	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
)

// Cost Explorer is only served from us-east-1.
const costExplorerRegion = "us-east-1"

// AWSClient reads costs from Cost Explorer and inventory from EC2 and S3.
type AWSClient struct {
	log *logger.Logger
}

// NewAWSClient creates a live AWS backend.
func NewAWSClient(log *logger.Logger) *AWSClient {
	return &AWSClient{log: log.Provider(provider.AWS.String(), "live")}
}

func (c *AWSClient) config(ctx context.Context, creds provider.Credentials, region string) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if creds.AWSAccessKeyID != "" && creds.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.AWSAccessKeyID, creds.AWSSecretAccessKey, "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, errors.ProviderAuthError(provider.AWS.String(), fmt.Errorf("failed to load AWS config: %w", err))
	}
	return cfg, nil
}

// FetchCosts queries daily unblended cost grouped by service and region.
func (c *AWSClient) FetchCosts(ctx context.Context, creds provider.Credentials, start, end time.Time) ([]cost.Record, error) {
	cfg, err := c.config(ctx, creds, costExplorerRegion)
	if err != nil {
		return nil, err
	}
	ce := costexplorer.NewFromConfig(cfg)

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &cetypes.DateInterval{
			Start: aws.String(start.Format(cost.DateLayout)),
			// End is exclusive in Cost Explorer.
			End: aws.String(end.AddDate(0, 0, 1).Format(cost.DateLayout)),
		},
		Granularity: cetypes.GranularityDaily,
		Metrics:     []string{"UnblendedCost"},
		GroupBy: []cetypes.GroupDefinition{
			{Type: cetypes.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")},
			{Type: cetypes.GroupDefinitionTypeDimension, Key: aws.String("REGION")},
		},
	}

	var records []cost.Record
	for {
		result, err := ce.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, classify(provider.AWS, fmt.Errorf("AWS Cost Explorer API error: %w", err))
		}
		for _, byTime := range result.ResultsByTime {
			if byTime.TimePeriod == nil || byTime.TimePeriod.Start == nil {
				continue
			}
			day, err := time.Parse(cost.DateLayout, *byTime.TimePeriod.Start)
			if err != nil {
				c.log.WarnWithErr(errors.MalformedData("unparseable Cost Explorer period", err), "Dropping cost bucket")
				continue
			}
			for _, group := range byTime.Groups {
				rec, ok := c.recordFromGroup(day, group)
				if ok {
					records = append(records, rec)
				}
			}
		}
		if result.NextPageToken == nil || *result.NextPageToken == "" {
			break
		}
		input.NextPageToken = result.NextPageToken
	}

	return keepValid(records, c.log), nil
}

func (c *AWSClient) recordFromGroup(day time.Time, group cetypes.Group) (cost.Record, bool) {
	rec := cost.Record{Date: day, Currency: "USD"}
	if len(group.Keys) > 0 {
		rec.Service = group.Keys[0]
	}
	if len(group.Keys) > 1 {
		rec.Region = group.Keys[1]
	}
	metric, ok := group.Metrics["UnblendedCost"]
	if !ok || metric.Amount == nil {
		return rec, false
	}
	amount, err := strconv.ParseFloat(*metric.Amount, 64)
	if err != nil {
		c.log.WarnWithErr(errors.MalformedData(fmt.Sprintf("amount %q for %s", *metric.Amount, rec.Service), err), "Dropping cost bucket")
		return rec, false
	}
	if amount == 0 {
		return rec, false
	}
	rec.Amount = amount
	if metric.Unit != nil && *metric.Unit != "" {
		rec.Currency = *metric.Unit
	}
	return rec, true
}

// FetchResources lists EC2 instances in every enabled region and all S3 buckets.
func (c *AWSClient) FetchResources(ctx context.Context, creds provider.Credentials) ([]resource.Resource, error) {
	cfg, err := c.config(ctx, creds, nonEmpty(creds.AWSRegion, "us-east-1"))
	if err != nil {
		return nil, err
	}

	regions := []string{}
	resp, err := ec2.NewFromConfig(cfg).DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, classify(provider.AWS, fmt.Errorf("describe regions: %w", err))
	}
	for _, r := range resp.Regions {
		if r.RegionName != nil {
			regions = append(regions, *r.RegionName)
		}
	}
	if len(regions) == 0 {
		regions = []string{cfg.Region}
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		resources []resource.Resource
	)
	sem := make(chan struct{}, 5)
	for _, region := range regions {
		wg.Add(1)
		sem <- struct{}{}
		go func(region string) {
			defer wg.Done()
			defer func() { <-sem }()
			found := c.fetchEC2InRegion(ctx, cfg, region)
			mu.Lock()
			resources = append(resources, found...)
			mu.Unlock()
		}(region)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		found := c.fetchS3Buckets(ctx, cfg)
		mu.Lock()
		resources = append(resources, found...)
		mu.Unlock()
	}()

	wg.Wait()
	return resources, nil
}

func (c *AWSClient) fetchEC2InRegion(ctx context.Context, cfg aws.Config, region string) []resource.Resource {
	out := []resource.Resource{}
	regional := cfg
	regional.Region = region
	p := ec2.NewDescribeInstancesPaginator(ec2.NewFromConfig(regional), &ec2.DescribeInstancesInput{})

	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			c.log.WithFields(map[string]interface{}{"region": region}).WarnWithErr(err, "EC2 describe instances failed")
			break
		}
		for _, res := range page.Reservations {
			for _, inst := range res.Instances {
				if inst.InstanceId == nil {
					c.log.Warn("Dropping EC2 instance without an ID")
					continue
				}
				r := resource.Resource{
					ID:       *inst.InstanceId,
					Name:     *inst.InstanceId,
					Type:     "EC2 Instance",
					Provider: provider.AWS,
					Region:   region,
					Status:   resource.StatusRunning,
					Tags:     map[string]string{},
				}
				if inst.State != nil {
					r.Status = resource.NormalizeStatus(string(inst.State.Name))
				}
				for _, t := range inst.Tags {
					if t.Key == nil || t.Value == nil {
						continue
					}
					r.Tags[*t.Key] = *t.Value
					if *t.Key == "Name" {
						r.Name = *t.Value
					}
				}
				out = append(out, r)
			}
		}
	}
	return out
}

func (c *AWSClient) fetchS3Buckets(ctx context.Context, cfg aws.Config) []resource.Resource {
	out := []resource.Resource{}
	resp, err := s3.NewFromConfig(cfg).ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		c.log.WarnWithErr(err, "S3 list buckets failed")
		return out
	}
	for _, b := range resp.Buckets {
		if b.Name == nil {
			continue
		}
		region := cfg.Region
		if b.BucketRegion != nil && *b.BucketRegion != "" {
			region = *b.BucketRegion
		}
		out = append(out, resource.Resource{
			ID:       "arn:aws:s3:::" + *b.Name,
			Name:     *b.Name,
			Type:     "S3 Bucket Storage",
			Provider: provider.AWS,
			Region:   region,
			Status:   resource.StatusRunning,
		})
	}
	return out
}

// FetchBudgets is not served by the live AWS backend.
func (c *AWSClient) FetchBudgets(ctx context.Context, creds provider.Credentials) ([]cost.Budget, error) {
	return nil, errors.Unsupported(provider.AWS.String(), "budgets")
}

// TestConnection succeeds when the credentials can describe regions.
func (c *AWSClient) TestConnection(ctx context.Context, creds provider.Credentials) (bool, error) {
	cfg, err := c.config(ctx, creds, nonEmpty(creds.AWSRegion, "us-east-1"))
	if err != nil {
		return false, err
	}
	if _, err := ec2.NewFromConfig(cfg).DescribeRegions(ctx, &ec2.DescribeRegionsInput{}); err != nil {
		return false, classify(provider.AWS, err)
	}
	return true, nil
}
