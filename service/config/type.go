package config

type DetectorParameters struct {
	ModelPath           string
	LabelsPath          string
	InputSize           int
	ConfidenceThreshold float32
	NMSThreshold        float32
}

type LLMParameters struct {
	URL          string
	Model        string
	SystemPrompt string
}

type IService interface {
	GetModeMaxShutdownTime() int
	GetLogsFolder() string
	GetLogLevel() string
	GetChannelURI() string
	GetChatServiceName() string
	GetTextSenderMarker() string
	GetRobotServiceURL() string
	GetFrameSize() (width, height int)
	GetDetectorParameters() DetectorParameters
	GetLandmarkSocketPath() string
	GetLandmarkTimeout() int
	GetLLMParameters() LLMParameters
	GetResponseBacklog() int
}
