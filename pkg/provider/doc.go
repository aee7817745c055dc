/*
Package provider selects and constructs LLM backends for docgen.

	            +-------------+
	            |  Provider   |
	            | (LLM text)  |
	            +------+------+
	                   |
	   +-------+-------+--------+--------+
	   |       |       |        |        |
	+--+--+ +--+---+ +-+----+ +-+--+ +---+--+
	|OpenAI| |Claude| |Gemini| |Groq| | Fake |
	+------+ +------+ +------+ +----+ +------+

🎯 Purpose:
- Maps a model name to the backend that serves it
- Exposes one calling contract: Generate(prompt) -> text
- Keeps vendor auth, endpoints and response shapes out of the engine

🔄 Flow:
1. KindForModel matches the model name against a fixed prefix table
2. New constructs the matching vendor client (or fails with
   ErrUnsupportedModel before any file I/O)
3. The engine calls Generate once per document

📝 Design Philosophy:
Dispatch is a closed enum with one exhaustive constructor switch, not an
open registry. Unknown models are rejected at construction so a bad
--model flag never gets as far as scanning a directory. Each client
receives the desired output language and instructs its model to respond
in that language; the engine never sees vendor response shapes.
*/
package provider
