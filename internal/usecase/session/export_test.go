package usecase_session

// CreateRetries exposes the retry budget to the external test package.
const CreateRetries = createRetries
