package openai

import (
	"fmt"
	"time"
)

const classificationResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "specificity": {
      "type": "string",
      "enum": ["Broad", "Specific"]
    },
    "refined_query": {
      "type": "string"
    },
    "filter_day": {
      "type": "string"
    },
    "filter_date": {
      "type": "string"
    },
    "filter_location": {
      "type": "string"
    }
  },
  "required": ["specificity", "refined_query"],
  "additionalProperties": false
}`

const classificationPromptTemplate = `You process user questions for a community event search system.
Today's date is %s.

Your tasks:
1. Generate a crisp, concise search query directly usable for semantic search in a vector database.
2. Classify the question as "Broad" or "Specific".
3. Extract optional metadata filters (day, date, location) from explicit mentions only.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble,
explanation, greeting, or acknowledgment. Start your response directly with the opening brace { and
end with the closing brace }. Your output must exactly follow this schema:

%s

Rules:
- Convert all relative date terms ("today", "tomorrow", "this weekend") into exact dates using
  today's date above. Write dates as "November 5, 2025".
- If a date is mentioned, add the corresponding weekday to the refined query.
- If a weekday is mentioned, add the nearest matching future date to the refined query, unless the
  user asks about a recurring occurrence like "every Wednesday".
- Include dates or days in the refined query ONLY if the user explicitly mentioned a date, day, or
  relative date term. Never add a date by default to a general query like "sound healing".
- Classify as "Broad" when the question carries only date/day/relative-date terms and no event-type
  or venue keyword (yoga, music, dance, healing, movie, talk, workshop, ...). Examples: "What's
  happening today?", "Events on Wednesday?", "Tomorrow?".
- Classify as "Specific" when the question names an event type or location, with or without a date.
  Examples: "Yoga classes on Tuesday?", "Sound healing sessions?", "What's happening at the Town Hall?".
- Vague input (e.g. just "events") is "Broad" and searched against today's date.
- Populate filter_day ("Wednesday"), filter_date ("November 5, 2025"), and filter_location only from
  explicit mentions in the question. Leave them empty otherwise.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text
  outside the object.

Example:
Input: "Yoga classes on Wednesday?"
Output:
{
  "specificity": "Specific",
  "refined_query": "yoga classes Wednesday",
  "filter_day": "Wednesday",
  "filter_date": "",
  "filter_location": ""
}

Example:
Input: "whats on tomorrow"
Output (assuming today is November 4, 2025):
{
  "specificity": "Broad",
  "refined_query": "community events November 5, 2025",
  "filter_day": "",
  "filter_date": "November 5, 2025",
  "filter_location": ""
}

Example:
Input: "sound healing sessions"
Output:
{
  "specificity": "Specific",
  "refined_query": "sound healing sessions",
  "filter_day": "",
  "filter_date": "",
  "filter_location": ""
}`

// referenceTimeLayout mirrors the original agent instructions' date header.
const referenceTimeLayout = "Monday, January 2, 2006, 3:04 PM"

// buildClassifierPrompt creates the system prompt anchored to the reference time.
func buildClassifierPrompt(now time.Time) string {
	return fmt.Sprintf(classificationPromptTemplate,
		now.Format(referenceTimeLayout),
		classificationResponseSchema)
}
