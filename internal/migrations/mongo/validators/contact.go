package validators

import "go.mongodb.org/mongo-driver/bson"

var ContactMessageValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"email",
			"message",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"email": bson.M{
				"bsonType": "string",
				"pattern":  "^[^@\\s]+@[^@\\s]+\\.[^@\\s]+$",
			},

			"message": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 5000,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
