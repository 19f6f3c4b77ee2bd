package constants

// Export MIME types understood by the document repository.
const (
	ExportMarkdown = "text/markdown"
	ExportDocx     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// GoogleDocMIME identifies native Google Docs files when querying a folder.
const GoogleDocMIME = "application/vnd.google-apps.document"

// ImageContentType is the content type used for externalized inline images.
const ImageContentType = "image/png"

// ImageKeyPrefix is the object-storage prefix for externalized images.
const ImageKeyPrefix = "images/"
