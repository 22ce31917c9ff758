package metrics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
)

// checkPair は2つのベクトルが空でなく同じ長さであることを確認する
func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yPred == nil || yTrue.Len() == 0 || yPred.Len() == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	n := yTrue.Len()
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// Accuracy は正解率（一致したラベルの割合）を計算する
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ClassificationError は誤分類率（1 - Accuracy）を計算する
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// AccuracyLabels は整数ラベル列に対する正解率を計算する
func AccuracyLabels(yTrue, yPred []int) (float64, error) {
	if len(yTrue) == 0 {
		return 0, errors.NewValueError("AccuracyLabels", "empty labels")
	}
	if len(yPred) != len(yTrue) {
		return 0, errors.NewDimensionError("AccuracyLabels", len(yTrue), len(yPred), 0)
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// AUC はROC曲線下面積を計算する。
// yTrue は0/1の二値ラベル、yScore は陽性クラスのスコア（確率や決定関数値）。
// 同順位のスコアは平均順位で扱う（Mann-Whitney U統計量と等価）。
// 片方のクラスしか存在しない場合は定義できないため 0.5 を返す。
// NaNや無限大のスコアは ValueError になる。
func AUC(yTrue, yScore *mat.VecDense) (float64, error) {
	n, err := checkPair("AUC", yTrue, yScore)
	if err != nil {
		return 0, err
	}

	type pair struct {
		score float64
		label float64
	}
	pairs := make([]pair, n)
	nPos := 0
	for i := 0; i < n; i++ {
		label := yTrue.AtVec(i)
		if label != 0 && label != 1 {
			return 0, errors.NewValueError("AUC", fmt.Sprintf("labels must be binary (0 or 1), got %v", label))
		}
		score := yScore.AtVec(i)
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return 0, errors.NewValueError("AUC", fmt.Sprintf("score at index %d is not finite: %v", i, score))
		}
		if label == 1 {
			nPos++
		}
		pairs[i] = pair{score: score, label: label}
	}
	nNeg := n - nPos
	if nPos == 0 || nNeg == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("AUC", "only one class present in y_true", 0.5))
		return 0.5, nil
	}

	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].score < pairs[j].score })

	// 陽性サンプルの順位和（1始まり、同順位は平均）
	var rankSum float64
	for i := 0; i < n; {
		j := i + 1
		for j < n && pairs[j].score == pairs[i].score {
			j++
		}
		avgRank := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			if pairs[k].label == 1 {
				rankSum += avgRank
			}
		}
		i = j
	}

	u := rankSum - float64(nPos*(nPos+1))/2
	return u / float64(nPos*nNeg), nil
}

// AUCMatrix は行列形式の入力に対してAUCを計算する。先頭列のみを使用する。
func AUCMatrix(yTrue, yScore mat.Matrix) (float64, error) {
	if yTrue == nil || yScore == nil {
		return 0, errors.NewValueError("AUCMatrix", "nil matrix")
	}
	rTrue, cTrue := yTrue.Dims()
	rScore, cScore := yScore.Dims()
	if rTrue == 0 || cTrue == 0 || rScore == 0 || cScore == 0 {
		return 0, errors.NewValueError("AUCMatrix", "empty matrix")
	}
	if rTrue != rScore {
		return 0, errors.NewDimensionError("AUCMatrix", rTrue, rScore, 0)
	}

	t := mat.NewVecDense(rTrue, nil)
	s := mat.NewVecDense(rScore, nil)
	for i := 0; i < rTrue; i++ {
		t.SetVec(i, yTrue.At(i, 0))
		s.SetVec(i, yScore.At(i, 0))
	}
	return AUC(t, s)
}

// ConfusionMatrix は混同行列。Counts[i][j] は真のラベルが Labels[i]、
// 予測ラベルが Labels[j] であったサンプル数。
type ConfusionMatrix struct {
	Labels []int
	Counts [][]int
}

// NewConfusionMatrix は混同行列を作成する。
// labels が nil の場合は yTrue と yPred に現れるラベルを昇順で使う。
func NewConfusionMatrix(yTrue, yPred []int, labels []int) (*ConfusionMatrix, error) {
	if len(yTrue) == 0 {
		return nil, errors.NewValueError("ConfusionMatrix", "empty labels")
	}
	if len(yPred) != len(yTrue) {
		return nil, errors.NewDimensionError("ConfusionMatrix", len(yTrue), len(yPred), 0)
	}
	if labels == nil {
		labels = UniqueLabels(yTrue, yPred)
	}

	index := make(map[int]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	counts := make([][]int, len(labels))
	for i := range counts {
		counts[i] = make([]int, len(labels))
	}
	for k := range yTrue {
		i, okT := index[yTrue[k]]
		j, okP := index[yPred[k]]
		if okT && okP {
			counts[i][j]++
		}
	}

	return &ConfusionMatrix{Labels: append([]int(nil), labels...), Counts: counts}, nil
}

// At は真のラベル trueLabel、予測ラベル predLabel の件数を返す
func (c *ConfusionMatrix) At(trueLabel, predLabel int) int {
	i, j := -1, -1
	for k, l := range c.Labels {
		if l == trueLabel {
			i = k
		}
		if l == predLabel {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return 0
	}
	return c.Counts[i][j]
}

// Total は行列に含まれる全サンプル数を返す
func (c *ConfusionMatrix) Total() int {
	total := 0
	for _, row := range c.Counts {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Binary は二値分類の TN, FP, FN, TP を返す。Labels[0] を陰性、Labels[1] を陽性とみなす。
func (c *ConfusionMatrix) Binary() (tn, fp, fn, tp int, err error) {
	if len(c.Labels) != 2 {
		return 0, 0, 0, 0, errors.NewValueError("ConfusionMatrix.Binary",
			fmt.Sprintf("binary confusion matrix requires 2 labels, got %d", len(c.Labels)))
	}
	return c.Counts[0][0], c.Counts[0][1], c.Counts[1][0], c.Counts[1][1], nil
}

// UniqueLabels は複数のラベル列に現れるラベルを昇順で返す
func UniqueLabels(ys ...[]int) []int {
	seen := make(map[int]struct{})
	for _, y := range ys {
		for _, v := range y {
			seen[v] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
