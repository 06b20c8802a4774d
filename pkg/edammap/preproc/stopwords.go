package preproc

// DefaultStopwords is a small built-in English stopword list, used when no
// stopword file is configured.
var DefaultStopwords = []string{
	"a", "about", "after", "all", "also", "an", "and", "any", "are", "as",
	"at", "be", "because", "been", "before", "being", "between", "both",
	"but", "by", "can", "could", "did", "do", "does", "doing", "down",
	"during", "each", "few", "for", "from", "further", "had", "has", "have",
	"having", "he", "her", "here", "him", "his", "how", "i", "if", "in",
	"into", "is", "it", "its", "just", "may", "me", "more", "most", "my",
	"no", "nor", "not", "now", "of", "off", "on", "once", "only", "or",
	"other", "our", "out", "over", "own", "same", "she", "should", "so",
	"some", "such", "than", "that", "the", "their", "them", "then", "there",
	"these", "they", "this", "those", "through", "to", "too", "under",
	"until", "up", "very", "was", "we", "were", "what", "when", "where",
	"which", "while", "who", "why", "will", "with", "would", "you", "your",
}
