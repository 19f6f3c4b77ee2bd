package prompt

// ProjectTemplate is the extraction prompt for project design documents.
const ProjectTemplate = `
The following readme is a project's design documentation. Analyze it and extract important project information in the expected json format:

**Project Description:**
{{.document}}

**Expected Format:**
{{.response_format}}

**Instructions:**
1. Based on the project description, determine appropriate values for each field in JSON format.
2. Associate images where needed and be creative figuring out each section.
3. Provide the extracted information in the JSON format as shown in the example.
4. Don't drop any JSON field and make every part unique but technical.

**Example Project Description:**
{{.example_input}}

**Expected JSON Format:**
{{.example_output}}

**Guidelines:**
* Extract only the most relevant information.
* Ensure the output is in the correct JSON format.
* Be concise but don't remove any technical details.
`

// CodelabTemplate is the extraction prompt for codelab write-ups.
const CodelabTemplate = `
The following document is a codelab write-up. Analyze it and extract the codelab information in the expected json format:

**Codelab Document:**
{{.document}}

**Expected Format:**
{{.response_format}}

**Instructions:**
1. Based on the write-up, determine appropriate values for each field in JSON format.
2. Summarize each key learning into a short, technical takeaway.
3. Provide the extracted information in the JSON format as shown in the example.
4. Don't drop any JSON field and make every part unique but technical.

**Example Codelab Document:**
{{.example_input}}

**Expected JSON Format:**
{{.example_output}}

**Guidelines:**
* Extract only the most relevant information.
* Ensure the output is in the correct JSON format.
* Be concise but don't remove any technical details.
`

// ProjectResponseFormat is the versioned schema literal shown to the model.
const ProjectResponseFormat = `{
    "id": "str",
    "projectHeroImg": "str",
    "projectTitle": "str",
    "readTimeInMins": "int",
    "overview": {
        "textContents": [
            {
                "content": "str",
                "imgUrl": "str"
            }
        ]
    },
    "problemStatement": "str",
    "features": {
        "textContents": [
            {
                "content": "str",
                "imgUrl": "str"
            }
        ]
    },
    "demo": {
        "title": "str",
        "imgUrl": "str",
        "videoUrl": "str",
        "genres": ["List[str]"]
    },
    "relevantLinks": ["List[str]"],
    "author": "Optional[str]"
}`

// CodelabResponseFormat is the versioned schema literal for codelab records.
const CodelabResponseFormat = `{
    "id": "str",
    "screenshotUrl": "str",
    "gcsUrl": "str",
    "title": "str",
    "keyLearnings": [
        {
            "content": "str",
            "icon": "Optional[str]"
        }
    ],
    "releasedDate": "str",
    "author": "Optional[str]"
}`

// ExampleProjectDocument is the worked-example input shown to the model.
const ExampleProjectDocument = `# Campus Events Board

A web app where student clubs publish upcoming events and members RSVP from
their phones. Built with a React front end and a Firebase backend; push
notifications go out an hour before each event starts.

![hero](https://storage.googleapis.com/gdg-fisk-assets/images/events-hero.png)

## The problem
Club announcements were scattered across five group chats, so most events were
discovered after they happened.

## Features
- Live event feed filtered by interest tags
- One-tap RSVP with calendar sync
- Organizer dashboard with attendance charts

Demo video: https://youtu.be/example
Repo: https://github.com/example/campus-events`

// ExampleProjectOutput is the worked-example output for the project template.
const ExampleProjectOutput = `{
    "id": "campus-events-board",
    "projectHeroImg": "https://storage.googleapis.com/gdg-fisk-assets/images/events-hero.png",
    "projectTitle": "Campus Events Board",
    "readTimeInMins": 4,
    "overview": {
        "textContents": [
            {
                "content": "A web app where student clubs publish upcoming events and members RSVP from their phones, built on React and Firebase with timed push notifications.",
                "imgUrl": "https://storage.googleapis.com/gdg-fisk-assets/images/events-hero.png"
            }
        ]
    },
    "problemStatement": "Club announcements were scattered across five group chats, so most events were discovered after they happened.",
    "features": {
        "textContents": [
            {
                "content": "Live event feed filtered by interest tags.",
                "imgUrl": ""
            },
            {
                "content": "One-tap RSVP with calendar sync and an organizer dashboard showing attendance charts.",
                "imgUrl": ""
            }
        ]
    },
    "demo": {
        "title": "Campus Events Board Demo",
        "imgUrl": "https://storage.googleapis.com/gdg-fisk-assets/images/events-hero.png",
        "videoUrl": "https://youtu.be/example",
        "genres": ["WEB", "FIREBASE", "COMMUNITY"]
    },
    "relevantLinks": ["https://github.com/example/campus-events"],
    "author": "GDG Fisk"
}`

// ExampleCodelabDocument is the worked-example input for the codelab template.
const ExampleCodelabDocument = `# Getting Started with Cloud Functions

In this codelab you deploy your first HTTP-triggered Cloud Function, wire it
to Firestore, and add structured logging.

![screenshot](https://storage.googleapis.com/gdg-fisk-assets/images/functions-shot.png)

What you'll learn:
- Deploying a function with the gcloud CLI
- Reading and writing Firestore from a function
- Finding your logs in Cloud Logging

Released: 2024-11-02. Slides: https://example.com/functions-codelab`

// ExampleCodelabOutput is the worked-example output for the codelab template.
const ExampleCodelabOutput = `{
    "id": "getting-started-cloud-functions",
    "screenshotUrl": "https://storage.googleapis.com/gdg-fisk-assets/images/functions-shot.png",
    "gcsUrl": "https://example.com/functions-codelab",
    "title": "Getting Started with Cloud Functions",
    "keyLearnings": [
        {
            "content": "Deploy an HTTP-triggered function with the gcloud CLI.",
            "icon": "cloud"
        },
        {
            "content": "Read and write Firestore documents from function code.",
            "icon": "database"
        },
        {
            "content": "Trace function behavior with structured Cloud Logging.",
            "icon": "search"
        }
    ],
    "releasedDate": "2024-11-02",
    "author": "GDG Fisk"
}`
