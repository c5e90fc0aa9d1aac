package config

// DefaultFile is the commented config written by 'subjectline config init'
const DefaultFile = `# Subject Line Analyzer Configuration

[database]
path = "~/.local/share/subjectline/subjectline.db"

[history]
limit = 10  # past analyses kept, newest first

[analysis]
delay_ms = 0  # pause before printing results (e.g. 1000 for the classic feel)

[lexicon]
# Matched case-insensitively as substrings, reported in list order
engagement_words = [
    "free",
    "urgent",
    "limited time",
    "exclusive",
    "sale",
    "discount",
    "offer",
    "now",
    "don't miss",
    "act fast"
]

spam_words = [
    "viagra",
    "enlargement",
    "miracle",
    "guaranteed",
    "cash",
    "winner",
    "prize",
    "nigerian prince"
]

[batch]
workers = 4

[logging]
level = "warn"      # debug, info, warn, error
format = "console"  # console, json

[mcp]
enabled = true
transport = "stdio"
`
