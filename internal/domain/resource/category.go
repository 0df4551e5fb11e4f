package resource

import "strings"

// Category is a coarse, vendor-neutral grouping of resource types.
type Category string

// Categories
const (
	CategorySecurity  Category = "security"
	CategoryCache     Category = "cache"
	CategoryDatabase  Category = "database"
	CategoryMessaging Category = "messaging"
	CategoryContainer Category = "container"
	CategoryWeb       Category = "web"
	CategoryNetwork   Category = "network"
	CategoryStorage   Category = "storage"
	CategoryCompute   Category = "compute"
	CategoryOther     Category = "other"
)

type categoryRule struct {
	category Category
	// typeKeywords classify a resource type string.
	typeKeywords []string
	// serviceKeywords match billing service labels for this category.
	serviceKeywords []string
}

// categoryTable is checked top to bottom; the first category with a matching
// type keyword wins, so narrower categories come before broad ones.
var categoryTable = []categoryRule{
	{
		category:        CategorySecurity,
		typeKeywords:    []string{"security", "key vault", "keyvault", "kms", "secret", "firewall", "waf", "identity", "microsoft.keyvault", "aws::kms", "secretmanager"},
		serviceKeywords: []string{"security", "key vault", "kms", "key management", "secrets manager", "secret manager", "firewall", "waf", "guardduty", "defender"},
	},
	{
		category:        CategoryCache,
		typeKeywords:    []string{"cache", "redis", "memcache", "memorystore", "microsoft.cache", "aws::elasticache"},
		serviceKeywords: []string{"cache", "elasticache", "redis", "memorystore", "memcache"},
	},
	{
		category:        CategoryDatabase,
		typeKeywords:    []string{"database", "sql", "rds", "dynamodb", "cosmos", "bigtable", "spanner", "firestore", "aurora", "microsoft.sql", "microsoft.documentdb", "aws::rds", "sqladmin"},
		serviceKeywords: []string{"database", "sql", "rds", "relational", "dynamodb", "cosmos", "bigtable", "spanner", "firestore", "aurora"},
	},
	{
		category:        CategoryMessaging,
		typeKeywords:    []string{"queue", "sqs", "sns", "pubsub", "pub/sub", "service bus", "servicebus", "event hub", "eventhub", "kinesis", "microsoft.servicebus", "aws::sqs"},
		serviceKeywords: []string{"queue", "sqs", "notification service", "sns", "pub/sub", "pubsub", "service bus", "event hubs", "kinesis"},
	},
	{
		category:        CategoryContainer,
		typeKeywords:    []string{"container", "kubernetes", "k8s", "aks", "eks", "gke", "ecs", "fargate", "microsoft.containerservice", "aws::ecs", "aws::eks"},
		serviceKeywords: []string{"container", "kubernetes", "eks", "ecs", "aks", "gke", "fargate"},
	},
	{
		category:        CategoryWeb,
		typeKeywords:    []string{"app service", "web app", "webapp", "function", "lambda", "cloud run", "app engine", "appengine", "microsoft.web", "aws::lambda"},
		serviceKeywords: []string{"app service", "functions", "lambda", "cloud run", "app engine"},
	},
	{
		category:        CategoryNetwork,
		typeKeywords:    []string{"load balancer", "loadbalancer", "load-balancer", "elb", "gateway", "vpc", "virtual network", "vnet", "network", "cdn", "dns", "microsoft.network", "aws::elasticloadbalancing"},
		serviceKeywords: []string{"network", "load balanc", "bandwidth", "data transfer", "vpc", "virtual private cloud", "cloudfront", "cdn", "dns", "route 53", "gateway"},
	},
	{
		category:        CategoryStorage,
		typeKeywords:    []string{"storage", "disk", "blob", "bucket", "s3", "volume", "snapshot", "file share", "filestore", "glacier", "microsoft.storage", "aws::s3"},
		serviceKeywords: []string{"storage", "s3", "blob", "disk", "ebs", "glacier", "filestore", "efs"},
	},
	{
		category:        CategoryCompute,
		typeKeywords:    []string{"compute", "virtual machine", "virtualmachine", "vm", "instance", "ec2", "server", "microsoft.compute", "aws::ec2", "compute.googleapis.com"},
		serviceKeywords: []string{"compute", "ec2", "virtual machine", "vm", "instance"},
	},
}

// networkGearKeywords is the subset of network types billed as standalone
// gear that may sit idle.
var networkGearKeywords = []string{"load balancer", "loadbalancer", "load-balancer", "elb", "gateway"}

// Categories returns every category in classification order, ending with other.
func Categories() []Category {
	out := make([]Category, 0, len(categoryTable)+1)
	for _, rule := range categoryTable {
		out = append(out, rule.category)
	}
	return append(out, CategoryOther)
}

// Classify maps a free-text resource type to a category, ignoring case.
func Classify(resourceType string) Category {
	t := strings.ToLower(resourceType)
	if t == "" {
		return CategoryOther
	}
	for _, rule := range categoryTable {
		if containsAny(t, rule.typeKeywords) {
			return rule.category
		}
	}
	return CategoryOther
}

// ServiceKeywords returns the billing keywords of c, or nil for other.
func (c Category) ServiceKeywords() []string {
	for _, rule := range categoryTable {
		if rule.category == c {
			return rule.serviceKeywords
		}
	}
	return nil
}

// MatchesService reports whether a billing service label belongs to c:
// the label contains one of c's keywords or is contained by one.
func (c Category) MatchesService(service string) bool {
	s := strings.ToLower(strings.TrimSpace(service))
	if s == "" {
		return false
	}
	for _, kw := range c.ServiceKeywords() {
		if strings.Contains(s, kw) || strings.Contains(kw, s) {
			return true
		}
	}
	return false
}

// IsCompute reports whether resourceType denotes a virtual machine or other compute.
func IsCompute(resourceType string) bool {
	return Classify(resourceType) == CategoryCompute
}

// IsStorage reports whether resourceType denotes storage, disks or blobs.
func IsStorage(resourceType string) bool {
	return Classify(resourceType) == CategoryStorage
}

// IsCommitmentEligible reports whether resourceType is a VM or database that
// can be covered by reserved capacity.
func IsCommitmentEligible(resourceType string) bool {
	c := Classify(resourceType)
	return c == CategoryCompute || c == CategoryDatabase
}

// IsNetworkGear reports whether resourceType denotes a load balancer or gateway.
func IsNetworkGear(resourceType string) bool {
	return Classify(resourceType) == CategoryNetwork &&
		containsAny(strings.ToLower(resourceType), networkGearKeywords)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
