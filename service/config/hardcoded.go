package config

type hardcodedService struct {
}

func NewHardCoded() IService {
	return &hardcodedService{}
}

func (svc *hardcodedService) GetModeMaxShutdownTime() int {
	return 2
}

func (svc *hardcodedService) GetLogsFolder() string {
	return "./logs"
}

func (svc *hardcodedService) GetLogLevel() string {
	return "info"
}

func (svc *hardcodedService) GetChannelURI() string {
	return "ws://127.0.0.1:8888/api/messages"
}

func (svc *hardcodedService) GetChatServiceName() string {
	return "i01"
}

func (svc *hardcodedService) GetTextSenderMarker() string {
	return "htmlFilter"
}

func (svc *hardcodedService) GetRobotServiceURL() string {
	return "http://localhost:8888/api/service/i01"
}

func (svc *hardcodedService) GetFrameSize() (int, int) {
	return 1024, 768
}

func (svc *hardcodedService) GetDetectorParameters() DetectorParameters {
	return DetectorParameters{
		ModelPath:           "./yolo8/yolov8n.onnx",
		LabelsPath:          "./yolo8/coco.names",
		InputSize:           640,
		ConfidenceThreshold: 0.25,
		NMSThreshold:        0.7,
	}
}

func (svc *hardcodedService) GetLandmarkSocketPath() string {
	return "/tmp/landmarks.sock"
}

// Zero means no deadline on sidecar calls
func (svc *hardcodedService) GetLandmarkTimeout() int {
	return 0
}

func (svc *hardcodedService) GetLLMParameters() LLMParameters {
	return LLMParameters{
		URL:          "http://localhost:11434/api/generate",
		Model:        "llama3",
		SystemPrompt: "You are a friendly robot assistant.",
	}
}

func (svc *hardcodedService) GetResponseBacklog() int {
	return 100
}
