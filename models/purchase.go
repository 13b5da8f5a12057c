package models

import "go.mongodb.org/mongo-driver/bson"

// Purchase documents are schemaless; whatever the client sends is stored.
type Purchase = bson.M
