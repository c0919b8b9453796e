package robot

import (
	"context"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/khaledhikmat/vs-robot-eye/service/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/xerrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type httpService struct {
	url    string
	client *http.Client
}

func NewHTTP(cfgSvc config.IService) IService {
	return &httpService{
		url: cfgSvc.GetRobotServiceURL(),
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Describe fetches the robot service descriptor
func (svc *httpService) Describe(ctx context.Context) (model.RobotDescriptor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, svc.url, nil)
	if err != nil {
		return model.RobotDescriptor{}, xerrors.Errorf("building request for %s: %w", svc.url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := svc.client.Do(req)
	if err != nil {
		return model.RobotDescriptor{}, xerrors.Errorf("requesting %s: %w", svc.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return model.RobotDescriptor{}, xerrors.Errorf("robot service returned %d: %s", resp.StatusCode, body)
	}

	desc := model.RobotDescriptor{}
	if err := json.NewDecoder(resp.Body).Decode(&desc); err != nil {
		return model.RobotDescriptor{}, xerrors.Errorf("decoding descriptor: %w", err)
	}

	return desc, nil
}
