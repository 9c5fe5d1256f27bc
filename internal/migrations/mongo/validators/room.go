package validators

import "go.mongodb.org/mongo-driver/bson"

var RoomValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"number",
			"type",
			"price_per_night",
			"is_active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"number": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"Single",
					"Double",
					"Suite",
				},
			},

			"price_per_night": bson.M{
				"bsonType":         []string{"double", "int", "long", "decimal"},
				"exclusiveMinimum": true,
				"minimum":          0,
			},

			"amenities": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"images": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"is_active": bson.M{
				"bsonType": "bool",
			},

			"reviews": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"user_id", "rating", "comment"},
					"properties": bson.M{
						"rating": bson.M{
							"bsonType": "int",
							"minimum":  1,
							"maximum":  5,
						},
					},
				},
			},

			"average_rating": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
				"maximum":  5,
			},

			"total_reviews": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
