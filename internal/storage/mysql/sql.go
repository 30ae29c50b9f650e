package mysql

const insertPredictionSQL = `
INSERT INTO predictions
  (artifact_id, endpoint, area_type, availability, location, size, society,
   total_sqft, bath, balcony, prediction)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Newest first; served by the (created_at, id) index.
const listPredictionsSQL = `
SELECT
  id,
  artifact_id,
  endpoint,
  area_type,
  availability,
  location,
  size,
  society,
  total_sqft,
  bath,
  balcony,
  prediction,
  created_at
FROM predictions
ORDER BY created_at DESC, id DESC
LIMIT ?
`
