package nodedetails

// Phase identifies a fine-grained sub-status reported while a node runs.
type Phase string

const (
	PhaseUnknown           Phase = "unknown"
	PhaseTransmittingData  Phase = "transmittingData"
	PhaseSettingComputeEnv Phase = "settingComputeEnvironment"
	PhaseComputing         Phase = "computing"
	PhaseSyncingData       Phase = "syncingData"
	PhaseFinishingUp       Phase = "finishingUp"
	PhaseErrorInCompute    Phase = "errorInCompute"
)

// DefaultRunningLabel is shown for a running node with no known phase.
const DefaultRunningLabel = "Started"

// phasesByLabel maps the description reported by the compute environment to
// the phase it represents.
var phasesByLabel = map[string]Phase{
	"Transmitting data to compute environment": PhaseTransmittingData,
	"Setting compute environment":              PhaseSettingComputeEnv,
	"Computing":                                PhaseComputing,
	"Syncing data from compute environment":    PhaseSyncingData,
	"Finishing up":                             PhaseFinishingUp,
	"Error in compute":                         PhaseErrorInCompute,
}

var phaseText = map[Phase]string{
	PhaseTransmittingData:  "Transmitting Data",
	PhaseSettingComputeEnv: "Setting Compute Environment",
	PhaseComputing:         "Computing",
	PhaseSyncingData:       "Syncing Data",
	PhaseFinishingUp:       "Finishing up",
	PhaseErrorInCompute:    "Error in Compute",
}

// Text returns the display text of the phase, or "" for PhaseUnknown.
func (p Phase) Text() string {
	return phaseText[p]
}

// ResolvedPhase is a known phase paired with its display text.
type ResolvedPhase struct {
	Phase Phase  `json:"phase"`
	Text  string `json:"text"`
}

// LookupPhase maps a raw status label to its phase. Labels that are not in
// the table map to PhaseUnknown.
func LookupPhase(label string) Phase {
	if phase, ok := phasesByLabel[label]; ok {
		return phase
	}
	return PhaseUnknown
}

// ResolvePhase returns the earliest reported label that maps to a known
// phase. The boolean is false when labels is empty or every label is unknown.
func ResolvePhase(labels []string) (ResolvedPhase, bool) {
	for _, label := range labels {
		phase := LookupPhase(label)
		if phase == PhaseUnknown {
			continue
		}
		return ResolvedPhase{Phase: phase, Text: phase.Text()}, true
	}
	return ResolvedPhase{}, false
}

// DisplayKind is the variant of a DisplayStatus.
type DisplayKind string

const (
	DisplayKindQueued     DisplayKind = "queued"
	DisplayKindFinalizing DisplayKind = "finalizing"
	DisplayKindTerminal   DisplayKind = "terminal"
	DisplayKindRunning    DisplayKind = "running"
)

// DisplayStatus is the status shown for a node. Phase is only ever set for
// DisplayKindRunning, and only when a fine-grained phase resolved.
type DisplayStatus struct {
	Kind   DisplayKind    `json:"kind"`
	Status NodeStatus     `json:"status"`
	Phase  *ResolvedPhase `json:"phase,omitempty"`
}

var directLabels = map[NodeStatus]struct {
	kind  DisplayKind
	label string
}{
	NodeStatusWaitingForPrevious:   {DisplayKindQueued, "Waiting for Previous"},
	NodeStatusScheduled:            {DisplayKindQueued, "Scheduled"},
	NodeStatusRegisteringFiles:     {DisplayKindFinalizing, "Registering Files"},
	NodeStatusFinishedWithError:    {DisplayKindTerminal, "FinishedWithError"},
	NodeStatusCancelled:            {DisplayKindTerminal, "Cancelled"},
	NodeStatusFinishedSuccessfully: {DisplayKindTerminal, "FinishedSuccessfully"},
}

// ResolveDisplayStatus combines the coarse status and the fine-grained labels
// into the status to display. A coarse status with a direct label always wins;
// the labels are only consulted while the node is running.
func ResolveDisplayStatus(status NodeStatus, labels []string) DisplayStatus {
	if direct, ok := directLabels[status]; ok {
		return DisplayStatus{Kind: direct.kind, Status: status}
	}
	display := DisplayStatus{Kind: DisplayKindRunning, Status: status}
	if phase, ok := ResolvePhase(labels); ok {
		display.Phase = &phase
	}
	return display
}

// Label returns the human-facing text for the status.
func (s DisplayStatus) Label() string {
	if direct, ok := directLabels[s.Status]; ok && s.Kind != DisplayKindRunning {
		return direct.label
	}
	if s.Phase != nil {
		return s.Phase.Text
	}
	return DefaultRunningLabel
}

// IsTerminal returns true if the node will not run any further.
func (s DisplayStatus) IsTerminal() bool {
	return s.Kind == DisplayKindTerminal
}
