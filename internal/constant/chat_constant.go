package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
)

// DefaultSessionID is used when the caller does not supply a session id.
const DefaultSessionID = "persistent_user_1"

// DefaultSessionTitle is the placeholder for sessions created before their
// first turn; the first committed question replaces it.
const DefaultSessionTitle = "New conversation"

// OffTopicReply is the fixed refusal appended for off-topic turns.
const OffTopicReply = "I'm sorry, but I can only answer questions about the uploaded research paper."

// RewritePromptV1 turns a follow-up question plus chat history into a
// standalone retrieval query. The model must output only the question.
const RewritePromptV1 = `You are a helpful assistant that rephrases the user's question for retrieval from an uploaded research paper.
When the user refers to 'this paper', 'this research', or 'this document', understand they are referring to the uploaded research paper.
Rephrase their question to be clear and specific for document retrieval while maintaining the intent.

Chat HISTORY:
%s

Current question:
%s

Provide ONLY the rephrased question without any additional text.`

// ClassifyPromptV1 asks for a binary yes/no relevance verdict. Questions
// about the conversation itself count as on-topic; only genuinely unrelated
// subject matter is off-topic.
const ClassifyPromptV1 = `You are a classifier determining if a question is relevant to a research paper conversation.

Question: %s

Consider these types of questions as ON-TOPIC:
1. Questions about the research paper content, methodology, results, conclusions
2. Questions about previous conversations or chat history (e.g., "what was my last question?", "what did we discuss?")
3. Questions asking for summaries of previous interactions
4. Meta-questions about the conversation or session

Consider these as OFF-TOPIC:
1. Questions about completely unrelated topics (weather, sports, cooking, etc.)
2. Questions that have nothing to do with research papers or our conversation

Is this question relevant to discussing a research paper OR managing our conversation?
Answer ONLY with 'yes' or 'no'.`

// AnswerPromptV1 grounds the answer in retrieved passages. The model is
// instructed to state insufficient context instead of fabricating.
const AnswerPromptV1 = `Answer the question based on the following context and chat history.
Focus on the latest question while considering the conversation flow.

Chat History:
%s

Context from Research Paper:
%s

Question: %s

Provide a clear, detailed answer based on the context. If the context doesn't contain enough information, say so.`
