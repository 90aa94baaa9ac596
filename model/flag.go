package model

type Flags struct {
	RootManagementGroup string
	OutputPath          string
	Months              int

	IncludeManagementGroups bool
	IncludeSubscriptions    bool
	IncludeResourceGroups   bool

	SubscriptionIDs []string
	RGNames         []string

	ConfigPath string
	Verbose    bool
	Trend      bool
}
