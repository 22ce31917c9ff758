package model

import (
	"encoding/gob"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
)

// CompressedSuffix を持つファイル名はxz圧縮されたgobとして読み書きされる
const CompressedSuffix = ".xz"

// SaveModel はモデルをファイルに保存する
//
// 親ディレクトリが存在しない場合は作成し、同名のファイルは上書きする。
// ファイル名が ".xz" で終わる場合はxz圧縮して保存する。
//
// 使用例:
//
//	clf := svm.NewSVC()
//	// ... モデルの学習 ...
//	err := model.SaveModel(clf, "model/model.sav")
func SaveModel(model interface{}, filename string) (err error) {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create model directory %s", dir)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to close file")
		}
	}()

	if !strings.HasSuffix(filename, CompressedSuffix) {
		return SaveModelToWriter(model, file)
	}

	zw, err := xz.NewWriter(file)
	if err != nil {
		return errors.Wrap(err, "failed to create xz writer")
	}
	if err := SaveModelToWriter(model, zw); err != nil {
		return err
	}
	return errors.Wrap(zw.Close(), "failed to flush xz stream")
}

// LoadModel はファイルからモデルを読み込む
//
// ファイルが存在しない場合のエラーは errors.ErrModelNotFound でマークされ、
// デコードに失敗した場合は ModelError を返す。
//
// 使用例:
//
//	var clf svm.SVC
//	err := model.LoadModel(&clf, "model/model.sav")
func LoadModel(model interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.WrapNotFound(err, errors.ErrModelNotFound, filename)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(filename, CompressedSuffix) {
		zr, err := xz.NewReader(file)
		if err != nil {
			return errors.NewModelError("LoadModel", "failed to open xz stream", err)
		}
		r = zr
	}

	return LoadModelFromReader(model, r)
}

// SaveModelToWriter はモデルをio.Writerに保存する
func SaveModelToWriter(model interface{}, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(model); err != nil {
		return errors.NewModelError("SaveModel", "failed to encode model", err)
	}
	return nil
}

// LoadModelFromReader はio.Readerからモデルを読み込む
func LoadModelFromReader(model interface{}, r io.Reader) error {
	if err := gob.NewDecoder(r).Decode(model); err != nil {
		return errors.NewModelError("LoadModel", "failed to decode model", err)
	}
	return nil
}
