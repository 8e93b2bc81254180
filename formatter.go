package nodedetails

// DetailFormatter interface for pretty output
type DetailFormatter interface {
	PrintDetail(detail *Detail)
	PrintSummaries(summaries []*NodeSummary)
}
