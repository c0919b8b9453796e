package data

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/khaledhikmat/vs-robot-eye/service/config"
	"github.com/natefinch/lumberjack"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type filesDBService struct {
	CfgSvc config.IService

	mu      sync.Mutex
	writers map[string]*lumberjack.Logger
}

// NewFilesDB appends every entity as one JSON line to a rotating file per
// entity kind under the logs folder
func NewFilesDB(cfgsvc config.IService) IService {
	return &filesDBService{
		CfgSvc:  cfgsvc,
		writers: map[string]*lumberjack.Logger{},
	}
}

func (svc *filesDBService) NewError(err interface{}) error {
	// Determine if the error is custom
	var customErr model.CustomError
	if custom, ok := err.(model.CustomError); ok {
		customErr = custom
	} else {
		customErr.Processor = "N/A"
		customErr.StackTrace = "N/A"
		if e, ok := err.(error); ok {
			customErr.Inner = e
			customErr.Message = e.Error()
		} else {
			customErr.Message = fmt.Sprintf("%v", err)
		}
	}

	inner := ""
	if customErr.Inner != nil {
		inner = customErr.Inner.Error()
	}

	errorData := struct {
		Timestamp  int64                  `json:"timestamp"`
		Processor  string                 `json:"processor"`
		Inner      string                 `json:"innerError"`
		Message    string                 `json:"message"`
		StackTrace string                 `json:"stackTrace"`
		Misc       map[string]interface{} `json:"misc"`
	}{
		Timestamp:  time.Now().Unix(),
		Processor:  customErr.Processor,
		Inner:      inner,
		Message:    customErr.Message,
		StackTrace: customErr.StackTrace,
		Misc:       customErr.Misc,
	}
	return svc.newEntity(errorData, "errors")
}

func (svc *filesDBService) NewPipelineStats(stats model.PipelineStats) error {
	stats.Timestamp = time.Now().Unix()
	return svc.newEntity(stats, "pipeline-stats")
}

func (svc *filesDBService) NewListenerStats(stats model.ListenerStats) error {
	stats.Timestamp = time.Now().Unix()
	return svc.newEntity(stats, "listener-stats")
}

func (svc *filesDBService) Close() error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	var firstErr error
	for name, w := range svc.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(svc.writers, name)
	}
	return firstErr
}

func (svc *filesDBService) newEntity(entity interface{}, filename string) error {
	data, err := json.Marshal(entity)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	svc.mu.Lock()
	defer svc.mu.Unlock()

	_, err = svc.writer(filename).Write(data)
	return err
}

func (svc *filesDBService) writer(filename string) *lumberjack.Logger {
	w, ok := svc.writers[filename]
	if !ok {
		w = &lumberjack.Logger{
			Filename:   filepath.Join(svc.CfgSvc.GetLogsFolder(), "diagnostics", filename+".jsonl"),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     7, // days
		}
		svc.writers[filename] = w
	}
	return w
}
