package result

// Phase identifies which pipeline stage produced an Event.
type Phase string

const (
	PhaseCrawl  Phase = "crawl"
	PhaseVerify Phase = "verify"
)

// Event reports progress of a running audit.
type Event struct {
	Phase       Phase
	Attempt     int    // Crawl attempt number (crawl phase)
	MaxAttempts int    // Crawl attempt budget (crawl phase)
	URL         string // Target URL (crawl) or probed link (verify)
	Done        int    // Probes settled so far (verify phase)
	Total       int    // Probes scheduled (verify phase)
	OK          bool   // Probe outcome (verify phase)
	Error       string
}
