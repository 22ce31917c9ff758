package svm_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/sklearn/svm"
)

func ExampleSVC() {
	X := mat.NewDense(6, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		3, 3,
		3, 4,
		4, 3,
	})
	y := mat.NewDense(6, 1, []float64{0, 0, 0, 1, 1, 1})

	clf := svm.NewSVC(svm.WithKernel("linear"), svm.WithC(1))
	if err := clf.Fit(X, y); err != nil {
		fmt.Println("fit:", err)
		return
	}

	pred, err := clf.Predict(mat.NewDense(2, 2, []float64{0.5, 0.5, 3.5, 3.5}))
	if err != nil {
		fmt.Println("predict:", err)
		return
	}
	fmt.Println(pred.At(0, 0), pred.At(1, 0))
	fmt.Println(clf.Classes())
	// Output:
	// 0 1
	// [0 1]
}
