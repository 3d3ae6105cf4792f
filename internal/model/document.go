package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// DefaultDocumentName is shown for documents stored without a file name.
const DefaultDocumentName = "Untitled Document"

// Document is a stored legal document section
type Document struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	FileName string             `bson:"fileName,omitempty"`
	Content  string             `bson:"content,omitempty"`
}

// DocumentResponse is the API representation of a Document
type DocumentResponse struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Name returns the file name, or DefaultDocumentName when unset.
func (d Document) Name() string {
	if d.FileName == "" {
		return DefaultDocumentName
	}
	return d.FileName
}

func (d Document) Response() DocumentResponse {
	return DocumentResponse{
		ID:      d.ID.Hex(),
		Name:    d.Name(),
		Content: d.Content,
	}
}
