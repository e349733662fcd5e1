package stage

// StageName represents a named stage in the pipeline
type StageName string

// Pipeline stages in execution order
const (
	StageLoad       StageName = "load"
	StageClean      StageName = "clean"
	StageEncode     StageName = "encode"
	StageTTest      StageName = "t_test"
	StageRegression StageName = "regression"
)

// Plan is the fixed stage order of one run
var Plan = []StageName{StageLoad, StageClean, StageEncode, StageTTest, StageRegression}
