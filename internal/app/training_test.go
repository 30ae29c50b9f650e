package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"house_price/internal/app"
	"house_price/internal/domain"
	"house_price/internal/ml"
)

const trainingCSV = `area_type,availability,location,size,society,total_sqft,bath,balcony,price
Super built-up Area,19-Dec,Electronic City Phase II,2 BHK,Coomee,1056,2,1,39.07
Plot Area,Ready To Move,Chikka Tirupathi,4 Bedroom,Theanmp,2600,5,3,120
Built-up Area,Ready To Move,Uttarahalli,3 BHK,,1440,2,3,62
Super built-up Area,Ready To Move,Lingadheeranahalli,3 BHK,Soiewre,1521,3,1,95
Super built-up Area,Ready To Move,Kothanur,2 BHK,,1200,2,1,51
Super built-up Area,Ready To Move,Whitefield,2 BHK,GreenVille,1170,2,1,38
Super built-up Area,Ready To Move,Whitefield,3 BHK,LotusPark,1700,3,2,105
Built-up Area,Immediate Possession,Hebbal,3 BHK,,1800,3,2,148
Plot Area,New Launch,Marathahalli,4 BHK,,3990,5,3,199.19
Super built-up Area,Ready To Move,KR Puram,1 BHK,,600,1,1,20.05
Super built-up Area,Ready To Move,JP Nagar,2 BHK,,2100 - 2850,4,0,186
`

func writeCSV(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "House_price.csv")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func trainingConfig(dir, data string) app.TrainingConfig {
	forest := ml.DefaultForestParams()
	forest.Trees = 10
	return app.TrainingConfig{
		DataPath:     data,
		PipelinePath: filepath.Join(dir, "house_price_pipeline.json.gz"),
		TestRatio:    0.2,
		Forest:       forest,
	}
}

func TestTrain_ProducesLoadableArtifact(t *testing.T) {
	dir := t.TempDir()
	cfg := trainingConfig(dir, writeCSV(t, dir, trainingCSV))

	res, err := app.NewTrainingService(cfg).Train(context.Background())
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if res.Report.RowsRead != 11 || res.Report.DroppedCoerce != 1 || res.Report.RowsKept != 10 {
		t.Fatalf("unexpected report: %+v", res.Report)
	}
	if res.TrainRows != 8 || res.TestRows != 2 {
		t.Fatalf("unexpected split: train=%d test=%d", res.TrainRows, res.TestRows)
	}

	art, err := ml.LoadArtifact(cfg.PipelinePath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if art.ID() != res.ArtifactID || art.Header.TrainRows != 8 {
		t.Fatalf("artifact header mismatch: %+v", art.Header)
	}

	svc := app.NewPredictionService(art, nil, nil, 0)
	if svc.Options().Degraded() {
		t.Fatalf("expected options from the trained model, got %+v", svc.Options())
	}
	p, err := svc.Predict(context.Background(), app.EndpointAPI, whitefield)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if p < 20.05 || p > 199.19 {
		t.Fatalf("prediction %v outside the training target range", p)
	}

	unknown := whitefield
	unknown.Location = "Atlantis"
	if _, err := svc.Predict(context.Background(), app.EndpointAPI, unknown); err != nil {
		t.Fatalf("unknown location must still predict: %v", err)
	}
}

func TestTrain_SingleRowDataset(t *testing.T) {
	dir := t.TempDir()
	lines := strings.SplitN(trainingCSV, "\n", 3)
	cfg := trainingConfig(dir, writeCSV(t, dir, lines[0]+"\n"+lines[1]+"\n"))

	res, err := app.NewTrainingService(cfg).Train(context.Background())
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if res.TrainRows != 1 {
		t.Fatalf("expected the single row to be used for training, got %d", res.TrainRows)
	}
	if _, err := os.Stat(cfg.PipelinePath); err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
}

func TestTrain_Failures(t *testing.T) {
	dir := t.TempDir()

	_, err := app.NewTrainingService(trainingConfig(dir, filepath.Join(dir, "absent.csv"))).Train(context.Background())
	if !errors.Is(err, domain.ErrDatasetNotFound) {
		t.Fatalf("expected ErrDatasetNotFound, got %v", err)
	}

	header := strings.SplitN(trainingCSV, "\n", 2)[0]
	cfg := trainingConfig(dir, writeCSV(t, dir, header+"\n,,,,,,,,\n"))
	_, err = app.NewTrainingService(cfg).Train(context.Background())
	if !errors.Is(err, domain.ErrNoTrainingRows) {
		t.Fatalf("expected ErrNoTrainingRows, got %v", err)
	}
	if _, statErr := os.Stat(cfg.PipelinePath); !os.IsNotExist(statErr) {
		t.Fatalf("no artifact should be written on failure")
	}
}
