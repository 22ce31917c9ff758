package main

import "github.com/Vedanshu-Patel/MLOPs-Lab-3-Airflow-GCP/cmd/adclick/cmd"

func main() {
	cmd.Execute()
}
