package errors

import "errors"

// Error message constants for the importsort application
const (
	// File processing errors
	ErrMsgFailedToReadFile   = "failed to read file"
	ErrMsgFailedToParseFile  = "failed to parse file"
	ErrMsgFailedToLayout     = "failed to lay out imports"
	ErrMsgFailedToWriteFile  = "failed to write file"
	ErrMsgUnsupportedFile    = "unsupported file type"
	ErrMsgFailedToCheckPath  = "failed to check path"
	ErrMsgFailedToFindFiles  = "failed to find source files in directory"
	ErrMsgFilesFailedProcess = "%d files failed to process"
	ErrMsgFilesNeedFormat    = "%d files need formatting"

	// Configuration errors
	ErrMsgFailedToReadConfig      = "failed to read config"
	ErrMsgFailedToUnmarshalConfig = "failed to unmarshal config"
	ErrMsgInvalidConfig           = "config validation failed"
	ErrMsgInvalidStyleDefinition  = "invalid style definition"

	// Info/warning messages
	WarnMsgProcessingDirWithoutInPlace = "Warning: Processing directory without --in-place flag. No files will be modified."
	InfoMsgUseInPlaceFlag              = "Use --in-place flag to modify files or specify a single file for stdout output."
	InfoMsgNoSourceFilesFound          = "No source files found in directory: %s"
	InfoMsgFoundSourceFiles            = "Found %d source files in directory: %s"
	InfoMsgProcessedFiles              = "Processed: %s"
	InfoMsgWouldReformat               = "Would reformat: %s"
	InfoMsgErrorProcessing             = "Error processing %s: %v"
	InfoMsgProcessedCount              = "\nProcessed %d files successfully"
	InfoMsgErrorCount                  = ", %d files had errors"
)

// Sentinel errors, matched with errors.Is
var (
	ErrInvalidStyle      = errors.New("invalid style definition")
	ErrUnknownStyle      = errors.New("unknown style")
	ErrUnmatched         = errors.New("import statement matches no rule")
	ErrPredicatePanic    = errors.New("style rule failed during evaluation")
	ErrUnknownPolicy     = errors.New("unknown unmatched policy")
	ErrParse             = errors.New("syntax error")
	ErrParserUnavailable = errors.New("source parser unavailable in this build")
	ErrUnsupportedFile   = errors.New(ErrMsgUnsupportedFile)
	ErrNeedsFormatting   = errors.New("imports need formatting")
)
