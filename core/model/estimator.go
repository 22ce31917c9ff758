package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う（n_samples × 1）
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer はスコアを計算できるモデルのインターフェース
// 分類器の場合は正解率を返す
type Scorer interface {
	Score(X, y mat.Matrix) (float64, error)
}

// Classifier は二値・多値分類器のインターフェース
type Classifier interface {
	Fitter
	Predictor
	Scorer

	// DecisionFunction は各サンプルの決定関数の値を返す
	DecisionFunction(X mat.Matrix) (mat.Matrix, error)

	// Classes は学習時に観測したクラスラベルを昇順で返す
	Classes() []int
}

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// ParameterGetter はハイパーパラメータを公開するモデルのインターフェース
type ParameterGetter interface {
	GetParams() map[string]interface{}
}
