package domain

// ResultStatus is an athlete's outcome status on a result sheet.
type ResultStatus string

const (
	StatusOK  ResultStatus = "OK"
	StatusDNF ResultStatus = "DNF"
	StatusDNS ResultStatus = "DNS"
	StatusDQ  ResultStatus = "DQ"
)

// NormalizeStatus coerces any value outside the known set to OK. Malformed
// statuses are a data-quality fact, not a pipeline failure.
func NormalizeStatus(s string) ResultStatus {
	switch ResultStatus(s) {
	case StatusOK, StatusDNF, StatusDNS, StatusDQ:
		return ResultStatus(s)
	}
	return StatusOK
}

// IngestStatus is the terminal state of one document in the processed-file ledger.
type IngestStatus string

const (
	IngestSuccess IngestStatus = "success"
	IngestFailed  IngestStatus = "failed"
	IngestSkipped IngestStatus = "skipped"
)

// MediaTypes maps raster image extensions (with dot, lower case) to the MIME
// type sent alongside the image in vision-model calls.
var MediaTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
}
