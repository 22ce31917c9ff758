package pipeline

import (
	"fmt"
	"time"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/core/model"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/sklearn/svm"
)

// ModelBundle is the persisted training artifact: the fitted classifier and
// the metadata needed to check it against new data.
type ModelBundle struct {
	Model         *svm.SVC
	CreatedAt     time.Time
	NFeatures     int
	NTrainSamples int
	FeatureNames  []string
	Params        map[string]string
}

func newBundle(clf *svm.SVC, split *Split) *ModelBundle {
	params := make(map[string]string)
	for k, v := range clf.GetParams() {
		params[k] = fmt.Sprint(v)
	}
	return &ModelBundle{
		Model:         clf,
		CreatedAt:     time.Now().UTC(),
		NFeatures:     split.NFeatures(),
		NTrainSamples: len(split.XTrain),
		FeatureNames:  append([]string(nil), split.FeatureNames...),
		Params:        params,
	}
}

// SaveBundle writes b to path, creating parent directories and replacing
// any existing file. A ".xz" suffix compresses the artifact.
func SaveBundle(b *ModelBundle, path string) error {
	return model.SaveModel(b, path)
}

// LoadBundle reads the artifact at path. A missing file matches
// errors.ErrModelNotFound; an undecodable one is a ModelError.
func LoadBundle(path string) (*ModelBundle, error) {
	var b ModelBundle
	if err := model.LoadModel(&b, path); err != nil {
		return nil, err
	}
	if b.Model == nil || !b.Model.IsFitted() {
		return nil, errors.NewModelError("LoadBundle", "artifact holds no fitted model", errors.Newf("bad artifact %s", path))
	}
	return &b, nil
}
