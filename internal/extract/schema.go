package extract

// Structured-output schema the model is constrained to. The shape
// mirrors recipe.Draft exactly; extraction either fills it or omits
// ingredients entirely when the page holds no recipe.
const recipeSchemaJSON = `{
  "name": "recipe",
  "strict": false,
  "schema": {
    "type": "object",
    "properties": {
      "title": {
        "type": "string",
        "description": "The title of the recipe."
      },
      "prepTime": {
        "type": "integer",
        "description": "The preparation time for the recipe."
      },
      "prepTimeUnit": {
        "type": "string",
        "description": "The unit of time used for the preparation time."
      },
      "cookTime": {
        "type": "integer",
        "description": "The cooking time for the recipe."
      },
      "cookTimeUnit": {
        "type": "string",
        "description": "The unit of time used for the cooking time."
      },
      "totalTime": {
        "type": "integer",
        "description": "The total time required for the recipe."
      },
      "totalTimeUnit": {
        "type": "string",
        "description": "The unit of time used for the total time."
      },
      "servings": {
        "type": "integer",
        "description": "The maximum number of servings or amount the recipe makes."
      },
      "mainImage": {
        "type": "string",
        "description": "URL of the main image for the recipe."
      },
      "ingredients": {
        "type": "array",
        "description": "List of ingredients used in the recipe.",
        "items": {
          "type": "object",
          "properties": {
            "amount": {
              "type": "number",
              "description": "The quantity of the ingredient."
            },
            "amountUnit": {
              "type": "string",
              "description": "The unit of measurement for the quantity."
            },
            "name": {
              "type": "string",
              "description": "The name of the ingredient."
            },
            "group": {
              "type": "string",
              "description": "The ingredient group heading this ingredient belongs to, e.g. sauce, topping."
            },
            "preparation": {
              "type": "string",
              "description": "How the ingredient should be processed."
            },
            "substitutions": {
              "type": "string",
              "description": "Possible substitutions for the ingredient."
            },
            "notes": {
              "type": "string",
              "description": "Additional notes about the ingredient."
            }
          },
          "required": ["amount", "amountUnit", "name", "group"],
          "additionalProperties": false
        }
      },
      "directions": {
        "type": "array",
        "description": "Step-by-step directions for preparing the dish.",
        "items": {
          "type": "object",
          "properties": {
            "instruction": {
              "type": "string",
              "description": "The instruction for this step."
            },
            "image": {
              "type": "string",
              "description": "image showing this step."
            }
          },
          "required": ["instruction"],
          "additionalProperties": false
        }
      },
      "notes": {
        "type": "array",
        "description": "General notes or tips for the recipe.",
        "items": {
          "type": "string"
        }
      }
    },
    "required": ["ingredients", "directions", "title", "servings", "prepTime", "prepTimeUnit", "cookTime", "cookTimeUnit", "totalTime", "totalTimeUnit"],
    "additionalProperties": false
  }
}`
