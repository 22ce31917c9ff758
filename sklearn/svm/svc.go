// Package svm provides a scikit-learn compatible support vector classifier.
package svm

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/core/model"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/core/parallel"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/metrics"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/errors"
	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/pkg/log"
)

const (
	// tau replaces non-positive curvature in the working set selection.
	tau = 1e-12

	// defaultMaxIter is the SMO iteration cap used when MaxIter is -1.
	defaultMaxIter = 10000000

	// kernelThreshold is the row count above which kernel rows are computed in parallel.
	kernelThreshold = 64
)

var _ model.Classifier = (*SVC)(nil)

// SVC implements scikit-learn compatible C-Support Vector Classification
// for binary problems. Training solves the libsvm dual with SMO and
// second-order working set selection.
type SVC struct {
	State *model.StateManager

	// Hyperparameters
	Kernel      string
	C           float64
	Gamma       string
	Degree      int
	Coef0       float64
	Tol         float64
	MaxIter     int
	RandomState int64 // recorded with the model; training itself is deterministic

	// Learned attributes
	ClassLabels    []int       // sorted; ClassLabels[1] is the positive class
	SupportVectors [][]float64 // rows of the training matrix with non-zero alpha
	SupportIndices []int       // indices of the support vectors in the training matrix
	DualCoef       []float64   // y_i * alpha_i for each support vector
	Intercept      float64     // -rho
	SupportCounts  []int       // support vectors per class, in ClassLabels order
	GammaValue     float64     // resolved kernel coefficient
	NIter          int         // SMO iterations run by Fit

	kernel kernelFunc
	logger log.Logger
}

// NewSVC creates a new SVC with scikit-learn defaults
// (rbf kernel, C=1, gamma="scale", tol=1e-3, no iteration cap).
func NewSVC(opts ...Option) *SVC {
	s := &SVC{
		State:   model.NewStateManager(),
		Kernel:  "rbf",
		C:       1.0,
		Gamma:   "scale",
		Degree:  3,
		Coef0:   0.0,
		Tol:     1e-3,
		MaxIter: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = log.GetLoggerWithName("svm.SVC")
	return s
}

func (s *SVC) validateParams() error {
	if s.C <= 0 {
		return errors.NewValidationError("C", "must be strictly positive", s.C)
	}
	if s.Tol <= 0 {
		return errors.NewValidationError("tol", "must be strictly positive", s.Tol)
	}
	if s.Kernel == "poly" && s.Degree < 0 {
		return errors.NewValidationError("degree", "must be non-negative", s.Degree)
	}
	if s.MaxIter == 0 || s.MaxIter < -1 {
		return errors.NewValidationError("max_iter", "must be positive or -1", s.MaxIter)
	}
	return nil
}

// Fit trains the classifier on X (n_samples x n_features) and binary labels y (n_samples x 1).
func (s *SVC) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "SVC.Fit")
	start := time.Now()

	if s.State == nil {
		s.State = model.NewStateManager()
	}
	if s.logger == nil {
		s.logger = log.GetLoggerWithName("svm.SVC")
	}
	if err := s.validateParams(); err != nil {
		return err
	}

	nSamples, nFeatures := X.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return errors.NewModelError("SVC.Fit", "empty data", errors.ErrEmptyData)
	}
	yRows, yCols := y.Dims()
	if yRows != nSamples {
		return errors.NewDimensionError("SVC.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewDimensionError("SVC.Fit", 1, yCols, 1)
	}

	labels := make([]int, nSamples)
	for i := 0; i < nSamples; i++ {
		v := y.At(i, 0)
		if v != math.Trunc(v) {
			return errors.NewValueError("SVC.Fit", fmt.Sprintf("labels must be integers, got %v", v))
		}
		labels[i] = int(v)
	}
	classes := metrics.UniqueLabels(labels)
	switch {
	case len(classes) < 2:
		return errors.NewValueError("SVC.Fit",
			fmt.Sprintf("the number of classes has to be greater than one; got %d class", len(classes)))
	case len(classes) > 2:
		return errors.NewValueError("SVC.Fit",
			fmt.Sprintf("only binary classification is supported; got %d classes", len(classes)))
	}

	rows := matrixRows(X)
	gamma, err := resolveGamma(s.Gamma, rows)
	if err != nil {
		return err
	}
	kernel, err := newKernel(s.Kernel, gamma, s.Coef0, s.Degree)
	if err != nil {
		return err
	}

	signs := make([]float64, nSamples)
	for i, l := range labels {
		if l == classes[1] {
			signs[i] = 1
		} else {
			signs[i] = -1
		}
	}

	K := kernelMatrix(rows, kernel)
	sol := solve(K, signs, s.C, s.Tol, s.maxIter())
	if sol.iter >= s.maxIter() {
		errors.Warn(errors.NewConvergenceWarning("SVC", sol.iter,
			"Solver terminated early. Consider pre-processing your data with StandardScaler or MinMaxScaler."))
	}

	s.Reset()
	s.ClassLabels = classes
	s.GammaValue = gamma
	s.Intercept = -sol.rho
	s.NIter = sol.iter
	s.SupportCounts = make([]int, 2)
	for i, a := range sol.alpha {
		if a <= 0 {
			continue
		}
		s.SupportIndices = append(s.SupportIndices, i)
		s.SupportVectors = append(s.SupportVectors, append([]float64(nil), rows[i]...))
		s.DualCoef = append(s.DualCoef, signs[i]*a)
		if signs[i] > 0 {
			s.SupportCounts[1]++
		} else {
			s.SupportCounts[0]++
		}
	}
	if err := errors.CheckNumericalStability("SVC.Fit", s.DualCoef, sol.iter); err != nil {
		return err
	}
	if err := errors.CheckScalar("SVC.Fit", s.Intercept, sol.iter); err != nil {
		return err
	}

	s.kernel = kernel
	s.State.SetFitted(nFeatures, nSamples)

	s.logger.Debug("SVC fit completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
		log.IterationKey, sol.iter,
		log.SupportVectorsKey, len(s.SupportVectors),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Reset clears learned attributes and the fitted state.
func (s *SVC) Reset() {
	if s.State != nil {
		s.State.Reset()
	}
	s.ClassLabels = nil
	s.SupportVectors = nil
	s.SupportIndices = nil
	s.DualCoef = nil
	s.SupportCounts = nil
	s.Intercept = 0
	s.GammaValue = 0
	s.NIter = 0
	s.kernel = nil
}

func (s *SVC) maxIter() int {
	if s.MaxIter == -1 {
		return defaultMaxIter
	}
	return s.MaxIter
}

// IsFitted reports whether Fit has completed.
func (s *SVC) IsFitted() bool {
	return s.State != nil && s.State.IsFitted()
}

func (s *SVC) checkPredict(X mat.Matrix, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError("SVC", method)
	}
	_, c := X.Dims()
	return s.State.RequireFeatures("SVC."+method, c)
}

// kernelFn returns the kernel, rebuilding it after gob decoding.
func (s *SVC) kernelFn() (kernelFunc, error) {
	if s.kernel != nil {
		return s.kernel, nil
	}
	k, err := newKernel(s.Kernel, s.GammaValue, s.Coef0, s.Degree)
	if err != nil {
		return nil, err
	}
	s.kernel = k
	return k, nil
}

// DecisionFunction returns sum_i dual_coef_i * K(sv_i, x) + intercept for
// each row of X. Positive values predict ClassLabels[1].
func (s *SVC) DecisionFunction(X mat.Matrix) (mat.Matrix, error) {
	if err := s.checkPredict(X, "DecisionFunction"); err != nil {
		return nil, err
	}
	kernel, err := s.kernelFn()
	if err != nil {
		return nil, err
	}

	rows := matrixRows(X)
	out := mat.NewDense(len(rows), 1, nil)
	parallel.ParallelizeWithThreshold(len(rows), kernelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			sum := s.Intercept
			for k, sv := range s.SupportVectors {
				sum += s.DualCoef[k] * kernel(sv, rows[i])
			}
			out.Set(i, 0, sum)
		}
	})
	return out, nil
}

// Predict returns the predicted class label for each row of X (n_samples x 1).
func (s *SVC) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := s.checkPredict(X, "Predict"); err != nil {
		return nil, err
	}
	dec, err := s.DecisionFunction(X)
	if err != nil {
		return nil, err
	}

	r, _ := dec.Dims()
	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		label := s.ClassLabels[0]
		if dec.At(i, 0) > 0 {
			label = s.ClassLabels[1]
		}
		out.Set(i, 0, float64(label))
	}
	return out, nil
}

// Score returns the mean accuracy on the given test data and labels.
func (s *SVC) Score(X, y mat.Matrix) (float64, error) {
	pred, err := s.Predict(X)
	if err != nil {
		return 0, err
	}
	r, _ := pred.Dims()
	yRows, _ := y.Dims()
	if yRows != r {
		return 0, errors.NewDimensionError("SVC.Score", r, yRows, 0)
	}

	yTrue := make([]int, r)
	yPred := make([]int, r)
	for i := 0; i < r; i++ {
		yTrue[i] = int(y.At(i, 0))
		yPred[i] = int(pred.At(i, 0))
	}
	return metrics.AccuracyLabels(yTrue, yPred)
}

// Classes returns the class labels seen during Fit, in ascending order.
func (s *SVC) Classes() []int {
	return append([]int(nil), s.ClassLabels...)
}

// NSupport returns the number of support vectors for each class.
func (s *SVC) NSupport() []int {
	return append([]int(nil), s.SupportCounts...)
}

// GetParams returns the hyperparameters of the estimator.
func (s *SVC) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"kernel":       s.Kernel,
		"C":            s.C,
		"gamma":        s.Gamma,
		"degree":       s.Degree,
		"coef0":        s.Coef0,
		"tol":          s.Tol,
		"max_iter":     s.MaxIter,
		"random_state": s.RandomState,
	}
}

// String returns a string representation of the model.
func (s *SVC) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("SVC(kernel=%q, C=%g, gamma=%q, random_state=%d)", s.Kernel, s.C, s.Gamma, s.RandomState)
	}
	return fmt.Sprintf("SVC(kernel=%q, C=%g, gamma=%q, random_state=%d, n_support=%v, fitted=true)",
		s.Kernel, s.C, s.Gamma, s.RandomState, s.SupportCounts)
}

func matrixRows(X mat.Matrix) [][]float64 {
	r, c := X.Dims()
	rows := make([][]float64, r)
	for i := 0; i < r; i++ {
		rows[i] = make([]float64, c)
		mat.Row(rows[i], i, X)
	}
	return rows
}

// kernelMatrix computes the full symmetric Gram matrix.
func kernelMatrix(rows [][]float64, kernel kernelFunc) [][]float64 {
	n := len(rows)
	K := make([][]float64, n)
	parallel.ParallelizeWithThreshold(n, kernelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			K[i] = make([]float64, n)
			for j := 0; j < n; j++ {
				K[i][j] = kernel(rows[i], rows[j])
			}
		}
	})
	return K
}

type solution struct {
	alpha []float64
	rho   float64
	iter  int
}

// solve runs SMO on the C-SVC dual
//
//	min 0.5 a^T Q a - e^T a,  0 <= a_i <= C,  y^T a = 0
//
// with Q_ij = y_i y_j K_ij, following libsvm's WSS2 selection and update rules.
func solve(K [][]float64, y []float64, C, eps float64, maxIter int) solution {
	n := len(y)
	alpha := make([]float64, n)
	G := make([]float64, n)
	for i := range G {
		G[i] = -1
	}

	upper := func(i int) bool { return alpha[i] >= C }
	lower := func(i int) bool { return alpha[i] <= 0 }

	iter := 0
	for iter < maxIter {
		i, j, ok := selectWorkingSet(K, y, G, upper, lower, eps)
		if !ok {
			break
		}
		iter++

		oldAi, oldAj := alpha[i], alpha[j]
		quad := K[i][i] + K[j][j] - 2*K[i][j]
		if quad <= 0 {
			quad = tau
		}

		if y[i] != y[j] {
			delta := (-G[i] - G[j]) / quad
			diff := alpha[i] - alpha[j]
			alpha[i] += delta
			alpha[j] += delta
			if diff > 0 {
				if alpha[j] < 0 {
					alpha[j] = 0
					alpha[i] = diff
				}
			} else if alpha[i] < 0 {
				alpha[i] = 0
				alpha[j] = -diff
			}
			if diff > 0 {
				if alpha[i] > C {
					alpha[i] = C
					alpha[j] = C - diff
				}
			} else if alpha[j] > C {
				alpha[j] = C
				alpha[i] = C + diff
			}
		} else {
			delta := (G[i] - G[j]) / quad
			sum := alpha[i] + alpha[j]
			alpha[i] -= delta
			alpha[j] += delta
			if sum > C {
				if alpha[i] > C {
					alpha[i] = C
					alpha[j] = sum - C
				}
			} else if alpha[j] < 0 {
				alpha[j] = 0
				alpha[i] = sum
			}
			if sum > C {
				if alpha[j] > C {
					alpha[j] = C
					alpha[i] = sum - C
				}
			} else if alpha[i] < 0 {
				alpha[i] = 0
				alpha[j] = sum
			}
		}

		dAi := alpha[i] - oldAi
		dAj := alpha[j] - oldAj
		for k := 0; k < n; k++ {
			G[k] += y[k] * (y[i]*K[i][k]*dAi + y[j]*K[j][k]*dAj)
		}
	}

	return solution{alpha: alpha, rho: computeRho(y, G, alpha, C), iter: iter}
}

// selectWorkingSet picks the maximal violating pair using second-order
// information. ok is false once the KKT gap drops below eps.
func selectWorkingSet(K [][]float64, y, G []float64, upper, lower func(int) bool, eps float64) (int, int, bool) {
	gmax := math.Inf(-1)
	gmax2 := math.Inf(-1)
	i, j := -1, -1

	for t := range y {
		if y[t] > 0 {
			if !upper(t) && -G[t] >= gmax {
				gmax = -G[t]
				i = t
			}
		} else if !lower(t) && G[t] >= gmax {
			gmax = G[t]
			i = t
		}
	}
	if i == -1 {
		return -1, -1, false
	}

	objMin := math.Inf(1)
	for t := range y {
		var gradDiff float64
		if y[t] > 0 {
			if lower(t) {
				continue
			}
			gradDiff = gmax + G[t]
			if G[t] >= gmax2 {
				gmax2 = G[t]
			}
		} else {
			if upper(t) {
				continue
			}
			gradDiff = gmax - G[t]
			if -G[t] >= gmax2 {
				gmax2 = -G[t]
			}
		}
		if gradDiff <= 0 {
			continue
		}
		quad := K[i][i] + K[t][t] - 2*K[i][t]
		if quad <= 0 {
			quad = tau
		}
		if obj := -(gradDiff * gradDiff) / quad; obj <= objMin {
			objMin = obj
			j = t
		}
	}

	if gmax+gmax2 < eps || j == -1 {
		return -1, -1, false
	}
	return i, j, true
}

// computeRho averages y_i*G_i over free support vectors, falling back to the
// midpoint of the feasible interval when none is free.
func computeRho(y, G, alpha []float64, C float64) float64 {
	ub := math.Inf(1)
	lb := math.Inf(-1)
	nFree := 0
	sumFree := 0.0

	for i := range y {
		yG := y[i] * G[i]
		switch {
		case alpha[i] >= C:
			if y[i] < 0 {
				ub = math.Min(ub, yG)
			} else {
				lb = math.Max(lb, yG)
			}
		case alpha[i] <= 0:
			if y[i] > 0 {
				ub = math.Min(ub, yG)
			} else {
				lb = math.Max(lb, yG)
			}
		default:
			nFree++
			sumFree += yG
		}
	}

	if nFree > 0 {
		return sumFree / float64(nFree)
	}
	return (ub + lb) / 2
}
