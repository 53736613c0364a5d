package logging

// Standardized field names for structured logging.
const (
	FieldFile        = "file_path"
	FieldProfile     = "profile"
	FieldParser      = "parser"
	FieldCount       = "count"
	FieldRow         = "row"
	FieldLabel       = "label"
	FieldDate        = "date"
	FieldSymbol      = "symbol"
	FieldName        = "name"
	FieldDescription = "description"
	FieldQuantity    = "quantity"
	FieldPrice       = "price"
	FieldFees        = "fees"
	FieldAmount      = "amount"
	FieldReason      = "reason"
	FieldAccount     = "linked_account"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldCategory    = "category"
	FieldLevel       = "requested_level"
	FieldRows        = "rows"
	FieldNotices     = "notices"
	FieldConfigFile  = "config_file"
)
