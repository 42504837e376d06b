package sql

import (
	"embed"
)

// Migrations holds the schema migrations, applied in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/register_batch.sql
var RegisterBatch string

//go:embed queries/lookup_batch.sql
var LookupBatch string

//go:embed queries/update_batch_status.sql
var UpdateBatchStatus string

//go:embed queries/delete_batch_responses.sql
var DeleteBatchResponses string

//go:embed queries/last_control_number.sql
var LastControlNumber string

//go:embed queries/record_inquiry.sql
var RecordInquiry string
