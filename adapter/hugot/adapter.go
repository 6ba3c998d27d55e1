package hugot

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"go.uber.org/zap"
)

// Adapter runs a local ONNX feature extraction model for question embeddings,
// an offline alternative to the hosted embedding APIs.
type Adapter struct {
	session   *hugot.Session
	embedding *pipelines.FeatureExtractionPipeline
	modelName string
	onnxPath  string
	modelsDir string
	logger    *zap.Logger
}

type Option func(*Adapter)

func WithModelName(name string) Option {
	return func(a *Adapter) {
		a.modelName = name
	}
}

func WithOnnxFilePath(path string) Option {
	return func(a *Adapter) {
		a.onnxPath = path
	}
}

func WithModelsDir(path string) Option {
	return func(a *Adapter) {
		a.modelsDir = path
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

const (
	defaultModelName   = "sentence-transformers/all-MiniLM-L6-v2"
	defaultModelsDir   = "/models"
	defaultOnxFilePath = "onnx/model.onnx"
)

func New(ctx context.Context, session *hugot.Session, options ...Option) (*Adapter, error) {
	a := &Adapter{
		session:   session,
		modelName: defaultModelName,
		onnxPath:  defaultOnxFilePath,
		modelsDir: defaultModelsDir,
		logger:    zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	a.logger.Sugar().With(
		"model", a.modelName,
		"models dir", a.modelsDir,
	).Info("init hugot adapter")

	if err := a.init(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

const adapterName = "hugot"

func (a *Adapter) Name() string {
	return adapterName
}

func (a *Adapter) init(ctx context.Context) error {
	modelPath, err := checkModelExists(a.modelsDir, a.modelName)
	if err != nil {
		return fmt.Errorf("failed to check embedding model: %w", err)
	}

	if modelPath == "" {
		a.logger.Info("start downloading embedding model", zap.String("model", a.modelName))

		downloadOptions := hugot.NewDownloadOptions()
		downloadOptions.OnnxFilePath = a.onnxPath
		modelPath, err = hugot.DownloadModel(a.modelName, a.modelsDir, downloadOptions)
		if err != nil {
			return fmt.Errorf("failed to download embedding model: %w", err)
		}

		a.logger.Info("downloaded embedding model", zap.String("model", a.modelName))
	} else {
		a.logger.Info("embedding model already exists, skipping download", zap.String("path", modelPath))
	}

	config := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "embeddingPipeline",
	}

	a.embedding, err = hugot.NewPipeline(a.session, config)
	if err != nil {
		return fmt.Errorf("failed to create embedding pipeline: %w", err)
	}

	return nil
}

func checkModelExists(destination, modelName string) (string, error) {
	modelP := modelName
	if strings.Contains(modelP, ":") {
		modelP = strings.Split(modelName, ":")[0]
	}
	modelPath := path.Join(destination, strings.ReplaceAll(modelP, "/", "_"))

	_, err := os.Stat(modelPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	return modelPath, nil
}
