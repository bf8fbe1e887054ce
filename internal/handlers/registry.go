package handlers

// AppHandlers holds every HTTP handler of the application
type AppHandlers struct {
	ContentHandler    *ContentHandler
	ImageHandler      *ImageHandler
	MediaHandler      *MediaHandler
	CollectionHandler *CollectionHandler
	ContactHandler    *ContactHandler
}
