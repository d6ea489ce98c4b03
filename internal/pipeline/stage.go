package pipeline

// Stage is the progress of one role. Roles advance strictly in declaration
// order and end in StageDone or StageFailed.
type Stage int

const (
	StageNotStarted Stage = iota
	StageLoaded
	StageMetadataReported
	StageChannelsWritten
	StageHistogramsWritten
	StageGrayscaleWritten
	StageBinarized
	StageDone
	StageFailed
)

var stageNames = [...]string{
	"not-started",
	"loaded",
	"metadata-reported",
	"channels-written",
	"histograms-written",
	"grayscale-written",
	"binarized",
	"done",
	"failed",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

func (s Stage) Terminal() bool {
	return s == StageDone || s == StageFailed
}
