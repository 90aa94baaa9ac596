package flag

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/elC0mpa/budget-doctor/model"
)

func NewService() *service {
	return &service{}
}

type service struct{}

func (s *service) GetParsedFlags() (model.Flags, error) {
	out := flag.String("out", "", "Output Excel path (.xlsx)")
	months := flag.Int("months", 3, "Number of full past months to compare (excludes current month)")
	scopes := flag.String("scopes", "mg,sub,rg", "Comma list of scope tiers to include: mg,sub,rg")
	subscriptionIDs := flag.String("subscription-ids", "", "Comma list of subscription IDs to restrict sub/rg processing to")
	rgNames := flag.String("rg-names", "", "Comma list of resource group names to restrict rg processing to")
	configPath := flag.String("config", "", "Optional YAML tuning file (API versions, retry ceiling, suggestion constants)")
	verbose := flag.Bool("verbose", false, "Enable verbose progress logging")
	trend := flag.Bool("trend", false, "Draw a spend trend chart for the root management group instead of assessing")

	flag.Parse()

	root := flag.Arg(0)
	if root == "" {
		return model.Flags{}, fmt.Errorf("usage: budget-doctor [flags] <root-management-group-id>")
	}

	flags := model.Flags{
		RootManagementGroup: root,
		OutputPath:          *out,
		Months:              *months,
		SubscriptionIDs:     splitList(*subscriptionIDs),
		RGNames:             splitList(*rgNames),
		ConfigPath:          *configPath,
		Verbose:             *verbose,
		Trend:               *trend,
	}

	for _, tier := range splitList(strings.ToLower(*scopes)) {
		switch tier {
		case "mg":
			flags.IncludeManagementGroups = true
		case "sub":
			flags.IncludeSubscriptions = true
		case "rg":
			flags.IncludeResourceGroups = true
		default:
			return model.Flags{}, fmt.Errorf("unknown scope tier %q (expected mg, sub or rg)", tier)
		}
	}

	if flags.OutputPath == "" {
		flags.OutputPath = fmt.Sprintf("budget_assessment_%s_%s.xlsx", root, time.Now().Format("2006-01-02"))
	}
	return flags, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	return lo.FilterMap(strings.Split(raw, ","), func(part string, _ int) (string, bool) {
		part = strings.TrimSpace(part)
		return part, part != ""
	})
}
