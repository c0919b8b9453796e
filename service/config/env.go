package config

import (
	"os"
	"strconv"
)

type envService struct {
	defaults IService
	lookup   func(string) (string, bool)
}

// NewEnv reads settings from the environment and falls back to the hardcoded
// defaults for anything unset or unparsable.
func NewEnv() IService {
	return newEnvWithLookup(os.LookupEnv)
}

func newEnvWithLookup(lookup func(string) (string, bool)) IService {
	return &envService{
		defaults: NewHardCoded(),
		lookup:   lookup,
	}
}

func (svc *envService) str(key, def string) string {
	if v, ok := svc.lookup(key); ok && v != "" {
		return v
	}
	return def
}

func (svc *envService) integer(key string, def int) int {
	v, ok := svc.lookup(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func (svc *envService) float(key string, def float32) float32 {
	v, ok := svc.lookup(key)
	if !ok || v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return def
	}
	return float32(f)
}

func (svc *envService) GetModeMaxShutdownTime() int {
	return svc.integer("MODE_MAX_SHUTDOWN_TIME", svc.defaults.GetModeMaxShutdownTime())
}

func (svc *envService) GetLogsFolder() string {
	return svc.str("LOGS_FOLDER", svc.defaults.GetLogsFolder())
}

func (svc *envService) GetLogLevel() string {
	return svc.str("LOG_LEVEL", svc.defaults.GetLogLevel())
}

func (svc *envService) GetChannelURI() string {
	return svc.str("CHANNEL_URI", svc.defaults.GetChannelURI())
}

func (svc *envService) GetChatServiceName() string {
	return svc.str("CHAT_SERVICE", svc.defaults.GetChatServiceName())
}

func (svc *envService) GetTextSenderMarker() string {
	return svc.str("TEXT_SENDER_MARKER", svc.defaults.GetTextSenderMarker())
}

func (svc *envService) GetRobotServiceURL() string {
	return svc.str("ROBOT_SERVICE_URL", svc.defaults.GetRobotServiceURL())
}

// The canonical frame size is fixed and not configurable from the environment
func (svc *envService) GetFrameSize() (int, int) {
	return svc.defaults.GetFrameSize()
}

func (svc *envService) GetDetectorParameters() DetectorParameters {
	def := svc.defaults.GetDetectorParameters()
	return DetectorParameters{
		ModelPath:           svc.str("YOLO_MODEL_PATH", def.ModelPath),
		LabelsPath:          svc.str("YOLO_LABELS_PATH", def.LabelsPath),
		InputSize:           svc.integer("YOLO_INPUT_SIZE", def.InputSize),
		ConfidenceThreshold: svc.float("YOLO_CONFIDENCE", def.ConfidenceThreshold),
		NMSThreshold:        svc.float("YOLO_NMS", def.NMSThreshold),
	}
}

func (svc *envService) GetLandmarkSocketPath() string {
	return svc.str("LANDMARK_SOCKET", svc.defaults.GetLandmarkSocketPath())
}

func (svc *envService) GetLandmarkTimeout() int {
	return svc.integer("LANDMARK_TIMEOUT_MS", svc.defaults.GetLandmarkTimeout())
}

func (svc *envService) GetLLMParameters() LLMParameters {
	def := svc.defaults.GetLLMParameters()
	return LLMParameters{
		URL:          svc.str("OLLAMA_URL", def.URL),
		Model:        svc.str("OLLAMA_MODEL", def.Model),
		SystemPrompt: svc.str("OLLAMA_SYSTEM_PROMPT", def.SystemPrompt),
	}
}

func (svc *envService) GetResponseBacklog() int {
	return svc.integer("RESPONSE_BACKLOG", svc.defaults.GetResponseBacklog())
}
