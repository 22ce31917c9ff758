package svm

// Option is a function that configures SVC
type Option func(*SVC)

// WithKernel sets the kernel: "linear", "poly", "rbf" or "sigmoid"
func WithKernel(kernel string) Option {
	return func(s *SVC) {
		s.Kernel = kernel
	}
}

// WithC sets the regularization parameter
func WithC(c float64) Option {
	return func(s *SVC) {
		s.C = c
	}
}

// WithGamma sets the kernel coefficient: "scale", "auto" or a positive number
func WithGamma(gamma string) Option {
	return func(s *SVC) {
		s.Gamma = gamma
	}
}

// WithDegree sets the degree of the polynomial kernel
func WithDegree(degree int) Option {
	return func(s *SVC) {
		s.Degree = degree
	}
}

// WithCoef0 sets the independent term of the poly and sigmoid kernels
func WithCoef0(coef0 float64) Option {
	return func(s *SVC) {
		s.Coef0 = coef0
	}
}

// WithTol sets the tolerance for the stopping criterion
func WithTol(tol float64) Option {
	return func(s *SVC) {
		s.Tol = tol
	}
}

// WithMaxIter caps the number of SMO iterations. -1 means no explicit cap.
func WithMaxIter(n int) Option {
	return func(s *SVC) {
		s.MaxIter = n
	}
}

// WithRandomState sets the seed recorded with the model
func WithRandomState(seed int64) Option {
	return func(s *SVC) {
		s.RandomState = seed
	}
}
